package roleassignment

import (
	"strconv"
	"testing"

	"github.com/giantswarm/voicelive-operator/service/key"
	"github.com/giantswarm/voicelive-operator/service/stack"
)

func testStack() stack.Stack {
	return stack.Stack{
		Environment: "dev",
		Location:    "westeurope",
		PrincipalID: "2869cee5-50c1-4d29-b372-0e30b6fe5b5e",
		Suffix:      "x7k2p",
	}
}

func Test_desiredAssignments(t *testing.T) {
	subscriptionID := "5ec06d78-3bbd-411b-9af3-6c2f06bdf9b6"
	s := testStack()

	assignments := desiredAssignments(subscriptionID, s)

	if len(assignments) != 3 {
		t.Fatalf("got %d assignments, want 3", len(assignments))
	}

	for i, a := range assignments {
		if a.principalID != s.PrincipalID {
			t.Fatalf("assignment %d has principal %q, want %q", i, a.principalID, s.PrincipalID)
		}
		if a.scope == "" || a.roleDefinitionID == "" || a.roleLabel == "" {
			t.Fatalf("assignment %d is incomplete: %#v", i, a)
		}
	}

	// Every assignment must resolve to its own name even where scopes or
	// roles overlap.
	names := map[string]bool{}
	for _, a := range assignments {
		names[key.RoleAssignmentName(a.scope, a.principalID, a.roleLabel)] = true
	}
	if len(names) != len(assignments) {
		t.Fatalf("got %d distinct names for %d assignments", len(names), len(assignments))
	}
}

func Test_desiredAssignments_NamesAreStable(t *testing.T) {
	subscriptionID := "5ec06d78-3bbd-411b-9af3-6c2f06bdf9b6"

	first := desiredAssignments(subscriptionID, testStack())
	second := desiredAssignments(subscriptionID, testStack())

	for i := range first {
		a := key.RoleAssignmentName(first[i].scope, first[i].principalID, first[i].roleLabel)
		b := key.RoleAssignmentName(second[i].scope, second[i].principalID, second[i].roleLabel)
		if a != b {
			t.Fatalf("assignment %d name changed between runs: %q != %q", i, a, b)
		}
	}
}

func Test_newAIReaderRoleDefinition(t *testing.T) {
	scope := "/subscriptions/5ec06d78-3bbd-411b-9af3-6c2f06bdf9b6"

	definition := newAIReaderRoleDefinition(scope)

	props := definition.RoleDefinitionProperties
	if props == nil {
		t.Fatal("got nil properties")
	}
	if *props.RoleName != "ai-reader" {
		t.Fatalf("got role name %q, want ai-reader", *props.RoleName)
	}
	if *props.RoleType != "CustomRole" {
		t.Fatalf("got role type %q, want CustomRole", *props.RoleType)
	}
	if len(*props.AssignableScopes) != 1 || (*props.AssignableScopes)[0] != scope {
		t.Fatalf("got assignable scopes %v, want [%s]", *props.AssignableScopes, scope)
	}

	for i, p := range *props.Permissions {
		for j, action := range *p.Actions {
			if action[len(action)-len("/read"):] != "/read" {
				t.Fatalf("permission %s grants more than read access", strconv.Itoa(i)+"/"+strconv.Itoa(j))
			}
		}
		if p.DataActions != nil && len(*p.DataActions) != 0 {
			t.Fatalf("permission %d grants data actions", i)
		}
	}
}
