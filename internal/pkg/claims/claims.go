package claims

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// Claims is the request identity extracted from the verified JWT.
type Claims struct {
	UserID     string
	EmployeeID string
	OrgID      string
	Role       string
}

// FromContext pulls identity claims out of the jwtauth context.
func FromContext(ctx context.Context) (Claims, error) {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	c := Claims{}
	if v, ok := raw["user_id"].(string); ok {
		c.UserID = v
	}
	if v, ok := raw["employee_id"].(string); ok {
		c.EmployeeID = v
	}
	if v, ok := raw["org_id"].(string); ok {
		c.OrgID = v
	}
	if v, ok := raw["role"].(string); ok {
		c.Role = v
	}

	if c.OrgID == "" {
		return Claims{}, fmt.Errorf("org_id claim is missing or invalid")
	}
	if c.EmployeeID == "" {
		return Claims{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	return c, nil
}
