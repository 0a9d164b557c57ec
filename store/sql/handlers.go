package sqlstore

import (
	"strconv"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

func accountHandlers() repository.ModelHandlers[*accountRecord] {
	return repository.ModelHandlers[*accountRecord]{
		NewRecord: func() *accountRecord {
			return &accountRecord{}
		},
		GetID: func(record *accountRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *accountRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *accountRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func walletHandlers() repository.ModelHandlers[*walletRecord] {
	return repository.ModelHandlers[*walletRecord]{
		NewRecord: func() *walletRecord {
			return &walletRecord{}
		},
		GetID: func(record *walletRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *walletRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *walletRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func accountWalletHandlers() repository.ModelHandlers[*accountWalletRecord] {
	return repository.ModelHandlers[*accountWalletRecord]{
		NewRecord: func() *accountWalletRecord {
			return &accountWalletRecord{}
		},
		GetID: func(record *accountWalletRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *accountWalletRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *accountWalletRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func issuerHandlers() repository.ModelHandlers[*issuerRecord] {
	return repository.ModelHandlers[*issuerRecord]{
		NewRecord: func() *issuerRecord {
			return &issuerRecord{}
		},
		GetID: func(record *issuerRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *issuerRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *issuerRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func accountIssuerHandlers() repository.ModelHandlers[*accountIssuerRecord] {
	return repository.ModelHandlers[*accountIssuerRecord]{
		NewRecord: func() *accountIssuerRecord {
			return &accountIssuerRecord{}
		},
		GetID: func(record *accountIssuerRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *accountIssuerRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *accountIssuerRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func eventHandlers() repository.ModelHandlers[*eventRecord] {
	return repository.ModelHandlers[*eventRecord]{
		NewRecord: func() *eventRecord {
			return &eventRecord{}
		},
		GetID: func(record *eventRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *eventRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "seq"
		},
		GetIdentifierValue: func(record *eventRecord) string {
			if record == nil {
				return ""
			}
			return strconv.FormatInt(record.Seq, 10)
		},
	}
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
