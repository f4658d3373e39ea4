// Command staffctl provisions staff accounts directly against the database.
package main

import (
	"os"

	"restaurant/configs"
	"restaurant/services"
)

func main() {
	cfg := configs.LoadConfig()
	configs.NewLogger(cfg)

	open := func() (*services.UserService, error) {
		db, err := configs.ConnectionDB(cfg)
		if err != nil {
			return nil, err
		}
		if err := configs.SetupDatabase(db); err != nil {
			return nil, err
		}
		return services.NewUserService(db), nil
	}

	if err := newRootCmd(open).Execute(); err != nil {
		os.Exit(1)
	}
}
