package main

import (
	"fmt"
	"os"

	"github.com/zapcrm/acesso/internal/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hashkey <admin-key>")
		os.Exit(1)
	}

	hash, err := auth.HashAdminKey(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
