package roleassignment

import (
	"github.com/Azure/azure-sdk-for-go/services/preview/authorization/mgmt/2018-09-01-preview/authorization"
	"github.com/Azure/go-autorest/autorest/to"

	"github.com/giantswarm/voicelive-operator/service/key"
	"github.com/giantswarm/voicelive-operator/service/stack"
)

// assignment is one desired role assignment.
type assignment struct {
	scope            string
	principalID      string
	roleDefinitionID string
	roleLabel        string
}

// desiredAssignments lists the ARM role assignments for the application
// principal. The data plane assignment on the document database account is
// handled separately since it goes through the SQL resources API.
func desiredAssignments(subscriptionID string, s stack.Stack) []assignment {
	return []assignment{
		{
			scope:            key.AIServicesID(subscriptionID, s),
			principalID:      s.PrincipalID,
			roleDefinitionID: key.BuiltInRoleDefinitionID(subscriptionID, key.CognitiveServicesUserRoleGUID),
			roleLabel:        key.RoleLabelCognitiveServicesUser,
		},
		{
			scope:            key.AIServicesID(subscriptionID, s),
			principalID:      s.PrincipalID,
			roleDefinitionID: key.BuiltInRoleDefinitionID(subscriptionID, key.AIReaderRoleDefinitionGUID(subscriptionID)),
			roleLabel:        key.RoleLabelAIReader,
		},
		{
			scope:            key.VaultID(subscriptionID, s),
			principalID:      s.PrincipalID,
			roleDefinitionID: key.BuiltInRoleDefinitionID(subscriptionID, key.KeyVaultSecretsUserRoleGUID),
			roleLabel:        key.RoleLabelKeyVaultSecretsUser,
		},
	}
}

// newAIReaderRoleDefinition computes the custom read only role for the AI
// services account. Its GUID is derived from the subscription so the
// definition is stable across runs.
func newAIReaderRoleDefinition(scope string) authorization.RoleDefinition {
	return authorization.RoleDefinition{
		RoleDefinitionProperties: &authorization.RoleDefinitionProperties{
			RoleName:    to.StringPtr(key.AIReaderRoleName),
			Description: to.StringPtr("Read access to cognitive services accounts."),
			RoleType:    to.StringPtr("CustomRole"),
			Permissions: &[]authorization.Permission{
				{
					Actions: &[]string{
						"Microsoft.CognitiveServices/accounts/read",
						"Microsoft.CognitiveServices/accounts/deployments/read",
						"Microsoft.CognitiveServices/accounts/models/read",
					},
					NotActions: &[]string{},
				},
			},
			AssignableScopes: &[]string{scope},
		},
	}
}
