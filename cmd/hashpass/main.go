// Command hashpass generates the bcrypt hash for the operator password,
// suitable for the ARCANA_AUTH_OPERATOR_PASSWORD_HASH setting.
package main

import (
	"fmt"
	"os"

	"github.com/ninthhouse/arcana-api/internal/service/auth"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpass <password>")
		os.Exit(2)
	}

	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
