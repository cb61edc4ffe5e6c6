package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Prints the bcrypt hash of the first argument (for seeding users by hand).
func main() {
	password := "changeme"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(h))
}
