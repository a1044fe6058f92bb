package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// policy is the fixed role table of the intranet. Roles come from the users
// table; there is no per-request policy loading.
var policy = [][]string{
	{"admin", "users", "create"},

	{"admin", "requests", "create"},
	{"manager", "requests", "create"},
	{"rrhh", "requests", "create"},
	{"tecnico", "requests", "create"},
	{"employee", "requests", "create"},

	{"admin", "requests", "read"},
	{"manager", "requests", "read"},
	{"rrhh", "requests", "read"},
	{"tecnico", "requests", "read"},
	{"employee", "requests", "read"},

	{"admin", "requests", "decide"},
	{"manager", "requests", "decide"},

	{"admin", "notifications", "read"},
	{"manager", "notifications", "read"},
	{"rrhh", "notifications", "read"},
	{"tecnico", "notifications", "read"},
	{"employee", "notifications", "read"},

	{"admin", "notifications", "update"},
	{"manager", "notifications", "update"},
	{"rrhh", "notifications", "update"},
	{"tecnico", "notifications", "update"},
	{"employee", "notifications", "update"},

	{"admin", "tools", "register"},
	{"tecnico", "tools", "register"},

	{"admin", "tools", "read"},
	{"manager", "tools", "read"},
	{"rrhh", "tools", "read"},
	{"tecnico", "tools", "read"},
	{"employee", "tools", "read"},

	{"admin", "tools", "delete"},
	{"tecnico", "tools", "delete"},
}

// NewEnforcer builds the casbin enforcer with the static model and policy.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if _, err := enforcer.AddPolicies(policy); err != nil {
		return nil, err
	}

	return enforcer, nil
}
