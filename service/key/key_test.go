package key

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/Azure/go-autorest/autorest/azure"

	"github.com/giantswarm/voicelive-operator/service/stack"
)

var validNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)

func testStack() stack.Stack {
	return stack.Stack{
		Environment: "dev",
		Location:    "westeurope",
		PrincipalID: "b6b5e25c-5667-4e86-8bbe-a83e59a2e9c6",
		Suffix:      "x7k2p",
	}
}

func Test_SanitizeName(t *testing.T) {
	testCases := []struct {
		name         string
		input        string
		expectedName string
	}{
		{
			name:         "case 0: lowercase passthrough",
			input:        "dev",
			expectedName: "dev",
		},
		{
			name:         "case 1: uppercase is lowered",
			input:        "Prod-EU",
			expectedName: "prod-eu",
		},
		{
			name:         "case 2: spaces and underscores are stripped",
			input:        "my_test env",
			expectedName: "mytestenv",
		},
		{
			name:         "case 3: punctuation is stripped",
			input:        "qa.2024!(east)",
			expectedName: "qa2024east",
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			if SanitizeName(tc.input) != tc.expectedName {
				t.Fatalf("expected %q got %q", tc.expectedName, SanitizeName(tc.input))
			}
		})
	}
}

func Test_VaultName_Constraints(t *testing.T) {
	testCases := []struct {
		name        string
		environment string
	}{
		{
			name:        "case 0: short environment",
			environment: "dev",
		},
		{
			name:        "case 1: long environment is truncated",
			environment: "a-very-long-environment-name-that-exceeds-every-limit",
		},
		{
			name:        "case 2: environment with forbidden characters",
			environment: "Prod_Environment 2024",
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			s := testStack()
			s.Environment = tc.environment

			n := VaultName(s)
			if len(n) > 24 {
				t.Fatalf("vault name %q exceeds 24 characters", n)
			}
			if !validNamePattern.MatchString(n) {
				t.Fatalf("vault name %q contains forbidden characters", n)
			}
		})
	}
}

func Test_CosmosAccountName_Constraints(t *testing.T) {
	s := testStack()
	s.Environment = "An Environment Name That Is Definitely Way Too Long For Cosmos"

	n := CosmosAccountName(s)
	if len(n) > 44 {
		t.Fatalf("cosmos account name %q exceeds 44 characters", n)
	}
	if !validNamePattern.MatchString(n) {
		t.Fatalf("cosmos account name %q contains forbidden characters", n)
	}
}

func Test_NameDerivation_IsStable(t *testing.T) {
	s := testStack()

	if VaultName(s) != VaultName(s) {
		t.Fatalf("vault name derivation is not stable")
	}
	if VaultName(s) != "kv-dev-x7k2p" {
		t.Fatalf("expected %q got %q", "kv-dev-x7k2p", VaultName(s))
	}
	if CosmosAccountName(s) != "cosmos-dev-x7k2p" {
		t.Fatalf("expected %q got %q", "cosmos-dev-x7k2p", CosmosAccountName(s))
	}
	if AIServicesName(s) != "ai-dev-x7k2p" {
		t.Fatalf("expected %q got %q", "ai-dev-x7k2p", AIServicesName(s))
	}
	if CommunicationName(s) != "acs-dev-x7k2p" {
		t.Fatalf("expected %q got %q", "acs-dev-x7k2p", CommunicationName(s))
	}
}

func Test_SecretURI(t *testing.T) {
	s := testStack()

	u := SecretURI(azure.PublicCloud, s, SecretNameVoiceLiveAPIKey)
	expected := "https://kv-dev-x7k2p.vault.azure.net/secrets/AZURE-VOICE-LIVE-API-KEY"
	if u != expected {
		t.Fatalf("expected %q got %q", expected, u)
	}
}

func Test_ContainerConstants(t *testing.T) {
	if PartitionKeyPath != "/sessionId" {
		t.Fatalf("expected partition key path %q got %q", "/sessionId", PartitionKeyPath)
	}
	if ContainerDefaultTTL != -1 {
		t.Fatalf("expected default TTL %d got %d", -1, ContainerDefaultTTL)
	}
}

func Test_RoleAssignmentName(t *testing.T) {
	scope := "/subscriptions/sub/resourceGroups/rg-dev/providers/Microsoft.KeyVault/vaults/kv-dev-x7k2p"
	principal := "b6b5e25c-5667-4e86-8bbe-a83e59a2e9c6"

	a := RoleAssignmentName(scope, principal, RoleLabelKeyVaultSecretsUser)
	b := RoleAssignmentName(scope, principal, RoleLabelKeyVaultSecretsUser)
	if a != b {
		t.Fatalf("assignment name is not stable: %q != %q", a, b)
	}

	testCases := []struct {
		name      string
		scope     string
		principal string
		label     string
	}{
		{
			name:      "case 0: different scope",
			scope:     scope + "-other",
			principal: principal,
			label:     RoleLabelKeyVaultSecretsUser,
		},
		{
			name:      "case 1: different principal",
			scope:     scope,
			principal: "0a6f34c1-8b0d-43f3-975a-cbb496b51a10",
			label:     RoleLabelKeyVaultSecretsUser,
		},
		{
			name:      "case 2: different role label",
			scope:     scope,
			principal: principal,
			label:     RoleLabelCognitiveServicesUser,
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			other := RoleAssignmentName(tc.scope, tc.principal, tc.label)
			if other == a {
				t.Fatalf("expected a different assignment name, got %q twice", a)
			}
		})
	}
}

func Test_ToStack(t *testing.T) {
	s := testStack()

	converted, err := ToStack(s)
	if err != nil {
		t.Fatalf("error == %#v, want nil", err)
	}
	if converted.Environment != s.Environment {
		t.Fatalf("expected %q got %q", s.Environment, converted.Environment)
	}

	converted, err = ToStack(&s)
	if err != nil {
		t.Fatalf("error == %#v, want nil", err)
	}
	if converted.Suffix != s.Suffix {
		t.Fatalf("expected %q got %q", s.Suffix, converted.Suffix)
	}

	_, err = ToStack("not a stack")
	if !IsWrongTypeError(err) {
		t.Fatalf("error == %#v, want wrongTypeError", err)
	}

	_, err = ToStack(nil)
	if !IsWrongTypeError(err) {
		t.Fatalf("error == %#v, want wrongTypeError", err)
	}
}
