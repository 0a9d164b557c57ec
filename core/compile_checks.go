package core

var (
	_ AccountDirectory = (*Service)(nil)
	_ AccountRequest   = EmailAccountRequest{}
	_ AccountRequest   = AddressAccountRequest{}
)
