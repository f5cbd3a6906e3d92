// Command token issues an access token for local testing of the attendance
// API. Login is handled by the identity service in production.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cmlabs-hris/workkeeper-go/internal/config"
	"github.com/cmlabs-hris/workkeeper-go/internal/domain/auth"
	"github.com/cmlabs-hris/workkeeper-go/internal/pkg/jwt"
)

func main() {
	employeeID := flag.String("employee", "", "employee id placed in the employee_id claim")
	role := flag.String("role", string(auth.RoleEmployee), "role claim: employee, manager or owner")
	flag.Parse()

	if *employeeID == "" {
		fmt.Fprintln(os.Stderr, "-employee is required")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).
		GenerateAccessToken(*employeeID, auth.Role(*role))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n# expires at %d\n", token, expiresAt)
}
