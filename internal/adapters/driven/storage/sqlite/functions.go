package sqlite

import (
	"database/sql/driver"
	"fmt"
	"sync"

	moderncsqlite "modernc.org/sqlite"

	"github.com/custodia-labs/norka/internal/textfold"
)

// foldFunction is the SQL name of the Unicode case-folding function.
// SQLite's built-in lower() only handles ASCII.
const foldFunction = "norka_fold"

var (
	registerOnce sync.Once
	registerErr  error
)

// registerFunctions registers the store's SQL functions with the driver.
// Registration is global and only affects connections opened afterwards,
// so it runs once before the first sql.Open.
func registerFunctions() error {
	registerOnce.Do(func() {
		registerErr = moderncsqlite.RegisterDeterministicScalarFunction(foldFunction, 1, foldImpl)
	})
	return registerErr
}

func foldImpl(_ *moderncsqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s: expected 1 argument, got %d", foldFunction, len(args))
	}

	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return textfold.Fold(v), nil
	case []byte:
		return textfold.Fold(string(v)), nil
	default:
		return textfold.Fold(fmt.Sprint(v)), nil
	}
}
