package sqlstore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlstore "github.com/goliatone/go-wallet-accounts/store/sql"
)

func TestConnect_OpensSQLite(t *testing.T) {
	client, err := sqlstore.Connect(sqlstore.ConnectionConfig{
		Driver: sqlstore.DriverSQLite,
		DSN: fmt.Sprintf(
			"file:accounts-connect-%d?mode=memory&cache=shared&_foreign_keys=on",
			time.Now().UnixNano(),
		),
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer func() {
		_ = client.Close()
	}()

	var one int
	if err := client.DB().NewRaw("SELECT 1").Scan(context.Background(), &one); err != nil {
		t.Fatalf("probe query: %v", err)
	}
	if one != 1 {
		t.Fatalf("expected probe result 1, got %d", one)
	}
}

func TestConnect_RejectsBadInput(t *testing.T) {
	if _, err := sqlstore.Connect(sqlstore.ConnectionConfig{Driver: sqlstore.DriverSQLite}); err == nil {
		t.Fatalf("expected missing dsn error")
	}
	if _, err := sqlstore.Connect(sqlstore.ConnectionConfig{
		Driver: "mysql",
		DSN:    "root@/accounts",
	}); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}
