package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/saikumarp/eapcet-predictor/utils/auth"
)

// hashpw prints the bcrypt hash for the ADMIN_PASSWORD_HASH environment
// variable. The password is read from the first argument or from stdin.
func main() {
	var password string
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			log.Fatalf("Failed to read password: %v", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if len(password) < auth.MinPasswordLength {
		log.Fatalf("Password must be at least %d characters", auth.MinPasswordLength)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println(hash)
}
