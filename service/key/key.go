// Package key computes all resource names, IDs and URIs of a stack. Every
// function here is pure so that a stack deploys to the same set of names on
// every pass.
package key

import (
	"fmt"
	"strings"

	"github.com/Azure/go-autorest/autorest/azure"
	"github.com/Azure/go-autorest/autorest/to"
	"github.com/giantswarm/microerror"
	"github.com/google/uuid"

	"github.com/giantswarm/voicelive-operator/pkg/project"
	"github.com/giantswarm/voicelive-operator/service/stack"
)

const (
	// Azure name length limits for the resource types we provision. Vault
	// names and Cosmos DB account names take part in DNS names and are the
	// strictest.
	maxVaultNameLength         = 24
	maxCosmosAccountNameLength = 44
	maxDefaultNameLength       = 63
)

const (
	// aiServicesLocation is the one region the voice live API is served
	// from. The account is pinned there no matter where the rest of the
	// stack lives.
	aiServicesLocation = "eastus2"

	communicationLocation     = "global"
	communicationDataLocation = "United States"
)

const (
	DatabaseName     = "conversationdb"
	ContainerName    = "transcripts"
	PartitionKeyPath = "/sessionId"
	// ContainerDefaultTTL disables default expiration of documents.
	ContainerDefaultTTL int32 = -1
)

const (
	SecretNameVoiceLiveAPIKey     = "AZURE-VOICE-LIVE-API-KEY"
	SecretNameACSConnectionString = "ACS-CONNECTION-STRING"
	SecretNameCosmosDBKey         = "COSMOS-DB-KEY"
)

const (
	// Built-in role definition GUIDs, see
	// https://learn.microsoft.com/azure/role-based-access-control/built-in-roles
	CognitiveServicesUserRoleGUID = "a97b65f3-24c7-4388-baec-2e87135dc908"
	KeyVaultSecretsUserRoleGUID   = "4633458b-17de-408a-b874-0445c86b69e6"
	// CosmosDataContributorRoleGUID is the account scoped SQL role
	// definition ID of the built-in data contributor.
	CosmosDataContributorRoleGUID = "00000000-0000-0000-0000-000000000002"

	AIReaderRoleName = "ai-reader"
)

const (
	RoleLabelCognitiveServicesUser = "cognitive-services-user"
	RoleLabelAIReader              = "ai-reader"
	RoleLabelKeyVaultSecretsUser   = "key-vault-secrets-user"
	RoleLabelCosmosDataContributor = "cosmos-db-data-contributor"
)

// namespaceUUID seeds the deterministic assignment and definition names the
// same way the original templates derived them with guid(). It must never
// change, or a redeploy would duplicate every grant.
var namespaceUUID = uuid.MustParse("b9f64569-3a7c-4f90-86f3-0fcac1c7b0a5")

// ToStack converts the untyped desired state handed to resource handlers
// back into a stack.
func ToStack(v interface{}) (stack.Stack, error) {
	if v == nil {
		return stack.Stack{}, microerror.Maskf(wrongTypeError, "expected '%T', got '%T'", stack.Stack{}, v)
	}

	switch s := v.(type) {
	case stack.Stack:
		return s, nil
	case *stack.Stack:
		return *s, nil
	}

	return stack.Stack{}, microerror.Maskf(wrongTypeError, "expected '%T', got '%T'", stack.Stack{}, v)
}

// SanitizeName lowercases the input and strips every character Azure rejects
// in resource names, keeping lowercase alphanumerics and hyphens.
func SanitizeName(s string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-':
			b.WriteRune(r)
		}
	}

	return b.String()
}

func truncateName(s string, max int) string {
	if len(s) > max {
		s = s[:max]
	}

	// Azure rejects names with a trailing hyphen.
	return strings.TrimRight(s, "-")
}

func EnvironmentName(s stack.Stack) string {
	return SanitizeName(s.Environment)
}

func suffix(s stack.Stack) string {
	return SanitizeName(s.Suffix)
}

func ResourceGroupName(s stack.Stack) string {
	if s.ResourceGroup != "" {
		return s.ResourceGroup
	}

	return truncateName(fmt.Sprintf("rg-%s", EnvironmentName(s)), maxDefaultNameLength)
}

func VaultName(s stack.Stack) string {
	return truncateName(fmt.Sprintf("kv-%s-%s", EnvironmentName(s), suffix(s)), maxVaultNameLength)
}

func CosmosAccountName(s stack.Stack) string {
	return truncateName(fmt.Sprintf("cosmos-%s-%s", EnvironmentName(s), suffix(s)), maxCosmosAccountNameLength)
}

func AIServicesName(s stack.Stack) string {
	return truncateName(fmt.Sprintf("ai-%s-%s", EnvironmentName(s), suffix(s)), maxDefaultNameLength)
}

func CommunicationName(s stack.Stack) string {
	return truncateName(fmt.Sprintf("acs-%s-%s", EnvironmentName(s), suffix(s)), maxDefaultNameLength)
}

func IdentityName(s stack.Stack) string {
	return truncateName(fmt.Sprintf("id-%s-%s", EnvironmentName(s), suffix(s)), maxDefaultNameLength)
}

func AIServicesLocation() string {
	return aiServicesLocation
}

func CommunicationLocation() string {
	return communicationLocation
}

func CommunicationDataLocation() string {
	return communicationDataLocation
}

func SubscriptionScope(subscriptionID string) string {
	return fmt.Sprintf("/subscriptions/%s", subscriptionID)
}

func ResourceGroupID(subscriptionID string, s stack.Stack) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", subscriptionID, ResourceGroupName(s))
}

func AIServicesID(subscriptionID string, s stack.Stack) string {
	return fmt.Sprintf("%s/providers/Microsoft.CognitiveServices/accounts/%s", ResourceGroupID(subscriptionID, s), AIServicesName(s))
}

func CommunicationID(subscriptionID string, s stack.Stack) string {
	return fmt.Sprintf("%s/providers/Microsoft.Communication/communicationServices/%s", ResourceGroupID(subscriptionID, s), CommunicationName(s))
}

func CosmosAccountID(subscriptionID string, s stack.Stack) string {
	return fmt.Sprintf("%s/providers/Microsoft.DocumentDB/databaseAccounts/%s", ResourceGroupID(subscriptionID, s), CosmosAccountName(s))
}

func IdentityID(subscriptionID string, s stack.Stack) string {
	return fmt.Sprintf("%s/providers/Microsoft.ManagedIdentity/userAssignedIdentities/%s", ResourceGroupID(subscriptionID, s), IdentityName(s))
}

func VaultID(subscriptionID string, s stack.Stack) string {
	return fmt.Sprintf("%s/providers/Microsoft.KeyVault/vaults/%s", ResourceGroupID(subscriptionID, s), VaultName(s))
}

// SecretURI composes the data plane URI of a vault secret from the vault
// name and the cloud environment's key vault DNS suffix.
func SecretURI(environment azure.Environment, s stack.Stack, secretName string) string {
	return fmt.Sprintf("https://%s.%s/secrets/%s", VaultName(s), environment.KeyVaultDNSSuffix, secretName)
}

// BuiltInRoleDefinitionID returns the subscription scoped ID of a built-in
// role definition.
func BuiltInRoleDefinitionID(subscriptionID, roleGUID string) string {
	return fmt.Sprintf("/subscriptions/%s/providers/Microsoft.Authorization/roleDefinitions/%s", subscriptionID, roleGUID)
}

// AIReaderRoleDefinitionGUID derives a stable GUID for the custom ai-reader
// role definition within one subscription.
func AIReaderRoleDefinitionGUID(subscriptionID string) string {
	return uuid.NewSHA1(namespaceUUID, []byte(fmt.Sprintf("roledefinition|%s|%s", subscriptionID, AIReaderRoleName))).String()
}

// CosmosSQLRoleDefinitionID returns the account scoped SQL role definition
// ID of the built-in data contributor.
func CosmosSQLRoleDefinitionID(subscriptionID string, s stack.Stack) string {
	return fmt.Sprintf("%s/sqlRoleDefinitions/%s", CosmosAccountID(subscriptionID, s), CosmosDataContributorRoleGUID)
}

// StackTags returns the tags applied to every resource of the stack, the
// configured ones plus the environment and owner markers.
func StackTags(s stack.Stack) map[string]*string {
	tags := map[string]string{
		"environment": EnvironmentName(s),
		"managed-by":  project.Name(),
	}
	for k, v := range s.Tags {
		tags[k] = v
	}

	return *to.StringMapPtr(tags)
}

// RoleAssignmentName derives the deterministic name of a role assignment
// from its scope, principal and role label. The name is stable for a fixed
// triple and changes whenever any of the three changes, which is what makes
// reapplying assignments idempotent.
func RoleAssignmentName(scope, principalID, roleLabel string) string {
	return uuid.NewSHA1(namespaceUUID, []byte(fmt.Sprintf("%s|%s|%s", scope, principalID, roleLabel))).String()
}
