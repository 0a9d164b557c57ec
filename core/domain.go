package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidWalletPermission = errors.New("core: invalid wallet permission")
	ErrAccountNotFound         = errors.New("core: account not found")
)

type EventAction string

const (
	EventAccountCreate EventAction = "Account.Create"
	EventAccountLogin  EventAction = "Account.Login"
	EventWalletCreate  EventAction = "Wallet.Create"
)

type WalletPermission string

const (
	WalletPermissionOwner    WalletPermission = "owner"
	WalletPermissionReadOnly WalletPermission = "read_only"
)

func (p WalletPermission) Validate() error {
	switch p {
	case WalletPermissionOwner, WalletPermissionReadOnly:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidWalletPermission, string(p))
	}
}

// Account is the identity record for one tenant-scoped holder. Exactly one
// credential kind is populated per account, discriminated by the request
// variant that created it.
type Account struct {
	ID            string
	Tenant        string
	Name          string
	Email         string
	WalletAddress string
	CreatedAt     time.Time
}

type Wallet struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type WalletListing struct {
	ID         string
	Name       string
	CreatedOn  time.Time
	AddedOn    time.Time
	Permission WalletPermission
}

type AccountWalletListing struct {
	Account string
	Wallets []WalletListing
}

type AddWalletMappingInput struct {
	Tenant     string
	AccountID  string
	WalletID   string
	Permission WalletPermission
}

type LinkIssuerInput struct {
	Tenant    string
	AccountID string
	IssuerID  string
}

// Event is one immutable audit record. Records are append-only and totally
// ordered per tenant by insertion sequence.
type Event struct {
	ID         string
	Tenant     string
	Action     EventAction
	Originator string
	Account    string
	Wallet     string
	Data       map[string]any
	CreatedAt  time.Time
}

// Field resolves a filterable field of the event by name. Core attributes
// shadow payload entries of the same name.
func (e Event) Field(name string) (string, bool) {
	switch strings.TrimSpace(name) {
	case "action":
		return string(e.Action), true
	case "tenant":
		return e.Tenant, true
	case "originator":
		return e.Originator, true
	case "account":
		return e.Account, true
	case "wallet":
		return e.Wallet, true
	}
	if len(e.Data) == 0 {
		return "", false
	}
	value, ok := e.Data[strings.TrimSpace(name)]
	if !ok || value == nil {
		return "", false
	}
	return fmt.Sprint(value), true
}

type RegistrationResult struct {
	ID string
}

type AuthenticationResult struct {
	ID       string
	Username string
	Token    string
}

type AuthenticatedUser struct {
	ID       string
	Username string
}

// AccountRequest is the closed union of credential-specific registration and
// authentication payloads. The variant set is fixed at compile time.
type AccountRequest interface {
	DisplayName() string
	accountRequest()
}

type EmailAccountRequest struct {
	Name     string
	Email    string
	Password string
}

func (r EmailAccountRequest) DisplayName() string {
	if strings.TrimSpace(r.Name) != "" {
		return strings.TrimSpace(r.Name)
	}
	return strings.TrimSpace(r.Email)
}

func (EmailAccountRequest) accountRequest() {}

type AddressAccountRequest struct {
	Name      string
	Address   string
	Challenge string
	Signature string
}

func (r AddressAccountRequest) DisplayName() string {
	if strings.TrimSpace(r.Name) != "" {
		return strings.TrimSpace(r.Name)
	}
	return strings.TrimSpace(r.Address)
}

func (AddressAccountRequest) accountRequest() {}

type CreateEmailAccountInput struct {
	Tenant       string
	Name         string
	Email        string
	PasswordHash string
}

type CreateAddressAccountInput struct {
	Tenant  string
	Name    string
	Address string
}
