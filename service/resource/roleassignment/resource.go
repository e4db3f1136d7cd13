package roleassignment

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/services/cosmos-db/mgmt/2021-10-15/documentdb"
	"github.com/Azure/azure-sdk-for-go/services/preview/authorization/mgmt/2018-09-01-preview/authorization"
	"github.com/Azure/go-autorest/autorest/to"
	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"

	"github.com/giantswarm/voicelive-operator/client"
	"github.com/giantswarm/voicelive-operator/service/key"
	"github.com/giantswarm/voicelive-operator/service/stack"
)

const (
	// Name is the identifier of the resource.
	Name = "roleassignment"
)

type Config struct {
	ClientSet *client.AzureClientSet
	Logger    micrologger.Logger
}

// Resource manages the role assignments granting the application principal
// access to the AI services account, the vault secrets and the transcript
// data plane. Assignment names are derived from their scope, principal and
// role so repeated runs converge on the same resources instead of piling up
// duplicates.
type Resource struct {
	clientSet *client.AzureClientSet
	logger    micrologger.Logger
}

func New(config Config) (*Resource, error) {
	if config.ClientSet == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.ClientSet must not be empty", config)
	}
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}

	r := &Resource{
		clientSet: config.ClientSet,
		logger:    config.Logger,
	}

	return r, nil
}

// EnsureCreated ensures the custom role definition and all role assignments
// exist.
func (r *Resource) EnsureCreated(ctx context.Context, obj interface{}) error {
	s, err := key.ToStack(obj)
	if err != nil {
		return microerror.Mask(err)
	}

	err = r.ensureAIReaderRoleDefinition(ctx)
	if err != nil {
		return microerror.Mask(err)
	}

	for _, a := range desiredAssignments(r.clientSet.SubscriptionID, s) {
		err = r.ensureAssignment(ctx, a)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	err = r.ensureSQLRoleAssignment(ctx, s)
	if err != nil {
		return microerror.Mask(err)
	}

	return nil
}

// EnsureDeleted removes the role assignments. The custom role definition is
// left in place since it is subscription scoped and other stacks may refer
// to it.
func (r *Resource) EnsureDeleted(ctx context.Context, obj interface{}) error {
	s, err := key.ToStack(obj)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring role assignments deletion")

	for _, a := range desiredAssignments(r.clientSet.SubscriptionID, s) {
		name := key.RoleAssignmentName(a.scope, a.principalID, a.roleLabel)

		resp, err := r.clientSet.RoleAssignmentsClient.Delete(ctx, a.scope, name)
		if client.ResponseWasNotFound(resp.Response) {
			continue
		} else if err != nil {
			return microerror.Mask(err)
		}
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured role assignments deletion")

	return nil
}

// Name returns the resource name.
func (r *Resource) Name() string {
	return Name
}

func (r *Resource) ensureAIReaderRoleDefinition(ctx context.Context) error {
	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring custom role definition is created")

	scope := key.SubscriptionScope(r.clientSet.SubscriptionID)
	roleDefinitionID := key.AIReaderRoleDefinitionGUID(r.clientSet.SubscriptionID)

	definition := newAIReaderRoleDefinition(scope)

	_, err := r.clientSet.RoleDefinitionsClient.CreateOrUpdate(ctx, scope, roleDefinitionID, definition)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured custom role definition is created")

	return nil
}

func (r *Resource) ensureAssignment(ctx context.Context, a assignment) error {
	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring role assignment is created", "role", a.roleLabel)

	name := key.RoleAssignmentName(a.scope, a.principalID, a.roleLabel)

	params := authorization.RoleAssignmentCreateParameters{
		RoleAssignmentProperties: &authorization.RoleAssignmentProperties{
			RoleDefinitionID: to.StringPtr(a.roleDefinitionID),
			PrincipalID:      to.StringPtr(a.principalID),
			PrincipalType:    authorization.ServicePrincipal,
		},
	}

	result, err := r.clientSet.RoleAssignmentsClient.Create(ctx, a.scope, name, params)
	if client.ResponseWasConflict(result.Response) {
		// The assignment exists from an earlier run. Its name pins scope,
		// principal and role so the existing one is what we want.
		r.logger.LogCtx(ctx, "level", "debug", "message", "role assignment already exists", "role", a.roleLabel)
		return nil
	} else if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured role assignment is created", "role", a.roleLabel)

	return nil
}

func (r *Resource) ensureSQLRoleAssignment(ctx context.Context, s stack.Stack) error {
	r.logger.LogCtx(ctx, "level", "debug", "message", "ensuring sql role assignment is created")

	scope := key.CosmosAccountID(r.clientSet.SubscriptionID, s)
	name := key.RoleAssignmentName(scope, s.PrincipalID, key.RoleLabelCosmosDataContributor)

	params := documentdb.SQLRoleAssignmentCreateUpdateParameters{
		SQLRoleAssignmentResource: &documentdb.SQLRoleAssignmentResource{
			RoleDefinitionID: to.StringPtr(key.CosmosSQLRoleDefinitionID(r.clientSet.SubscriptionID, s)),
			Scope:            to.StringPtr(scope),
			PrincipalID:      to.StringPtr(s.PrincipalID),
		},
	}

	future, err := r.clientSet.SQLResourcesClient.CreateUpdateSQLRoleAssignment(ctx, name, key.ResourceGroupName(s), key.CosmosAccountName(s), params)
	if err != nil {
		return microerror.Mask(err)
	}

	err = future.WaitForCompletionRef(ctx, r.clientSet.SQLResourcesClient.Client)
	if err != nil {
		return microerror.Mask(err)
	}

	r.logger.LogCtx(ctx, "level", "debug", "message", "ensured sql role assignment is created")

	return nil
}
