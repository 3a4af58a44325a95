package infra

import "github.com/casbin/casbin/v2"

// NewEnforcer builds a domain-aware enforcer from the model file only;
// policies are loaded from the database at enforce time.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath)
}
