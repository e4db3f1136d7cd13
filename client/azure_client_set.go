package client

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/mgmt/2021-04-30/cognitiveservices"
	"github.com/Azure/azure-sdk-for-go/services/communication/mgmt/2020-08-20/communication"
	"github.com/Azure/azure-sdk-for-go/services/cosmos-db/mgmt/2021-10-15/documentdb"
	"github.com/Azure/azure-sdk-for-go/services/keyvault/mgmt/2021-10-01/keyvault"
	"github.com/Azure/azure-sdk-for-go/services/msi/mgmt/2018-11-30/msi"
	"github.com/Azure/azure-sdk-for-go/services/preview/authorization/mgmt/2018-09-01-preview/authorization"
	"github.com/Azure/azure-sdk-for-go/services/resources/mgmt/2019-05-01/resources"
	"github.com/Azure/go-autorest/autorest"
	"github.com/giantswarm/microerror"

	"github.com/giantswarm/voicelive-operator/client/senddecorator"
	"github.com/giantswarm/voicelive-operator/pkg/backpressure"
	"github.com/giantswarm/voicelive-operator/pkg/project"
)

const (
	defaultAzureGUID = "37f13270-5c7a-56ff-9211-8426baaeaabd"
)

// AzureClientSet is the collection of Azure API clients.
type AzureClientSet struct {
	// The subscription ID this client set is configured with.
	SubscriptionID string
	// The Active Directory tenant this client set is configured with.
	TenantID string

	// CognitiveAccountsClient manages Cognitive Services accounts.
	CognitiveAccountsClient *cognitiveservices.AccountsClient
	// CommunicationClient manages Communication Services resources.
	CommunicationClient *communication.ServiceClient
	// DatabaseAccountsClient manages Cosmos DB database accounts.
	DatabaseAccountsClient *documentdb.DatabaseAccountsClient
	// GroupsClient manages ARM resource groups.
	GroupsClient *resources.GroupsClient
	// IdentitiesClient manages user assigned managed identities.
	IdentitiesClient *msi.UserAssignedIdentitiesClient
	// RoleAssignmentsClient manages role assignments on arbitrary scopes.
	RoleAssignmentsClient *authorization.RoleAssignmentsClient
	// RoleDefinitionsClient manages custom role definitions.
	RoleDefinitionsClient *authorization.RoleDefinitionsClient
	// SecretsClient manages key vault secrets through the management plane.
	SecretsClient *keyvault.SecretsClient
	// SQLResourcesClient manages Cosmos DB SQL databases, containers and
	// SQL role assignments.
	SQLResourcesClient *documentdb.SQLResourcesClient
	// VaultsClient manages key vaults.
	VaultsClient *keyvault.VaultsClient
}

// NewAzureClientSet returns the Azure API clients for the configured
// subscription. The metrics sink may be nil in which case API calls are not
// instrumented.
func NewAzureClientSet(config AzureClientSetConfig, metrics senddecorator.AzureAPIMetrics) (*AzureClientSet, error) {
	err := config.Validate()
	if err != nil {
		return nil, microerror.Mask(err)
	}

	credentials, err := config.credentials()
	if err != nil {
		return nil, microerror.Mask(err)
	}

	authorizer, err := credentials.Authorizer()
	if err != nil {
		return nil, microerror.Mask(err)
	}

	partnerID := config.PartnerID
	if partnerID == "" {
		partnerID = defaultAzureGUID
	}
	partnerID = fmt.Sprintf("pid-%s", partnerID)

	p := clientPreparer{
		authorizer:     authorizer,
		metrics:        metrics,
		partnerID:      partnerID,
		subscriptionID: config.SubscriptionID,
	}

	cognitiveAccountsClient := cognitiveservices.NewAccountsClient(config.SubscriptionID)
	p.prepare(&cognitiveAccountsClient.Client, "cognitiveservices")

	communicationClient := communication.NewServiceClient(config.SubscriptionID)
	p.prepare(&communicationClient.Client, "communication")

	databaseAccountsClient := documentdb.NewDatabaseAccountsClient(config.SubscriptionID)
	p.prepare(&databaseAccountsClient.Client, "documentdb")

	groupsClient := resources.NewGroupsClient(config.SubscriptionID)
	p.prepare(&groupsClient.Client, "resources")

	identitiesClient := msi.NewUserAssignedIdentitiesClient(config.SubscriptionID)
	p.prepare(&identitiesClient.Client, "msi")

	roleAssignmentsClient := authorization.NewRoleAssignmentsClient(config.SubscriptionID)
	p.prepare(&roleAssignmentsClient.Client, "authorization")

	roleDefinitionsClient := authorization.NewRoleDefinitionsClient(config.SubscriptionID)
	p.prepare(&roleDefinitionsClient.Client, "authorization")

	secretsClient := keyvault.NewSecretsClient(config.SubscriptionID)
	p.prepare(&secretsClient.Client, "keyvault")

	sqlResourcesClient := documentdb.NewSQLResourcesClient(config.SubscriptionID)
	p.prepare(&sqlResourcesClient.Client, "documentdb")

	vaultsClient := keyvault.NewVaultsClient(config.SubscriptionID)
	p.prepare(&vaultsClient.Client, "keyvault")

	clientSet := &AzureClientSet{
		SubscriptionID: config.SubscriptionID,
		TenantID:       config.TenantID,

		CognitiveAccountsClient: &cognitiveAccountsClient,
		CommunicationClient:     &communicationClient,
		DatabaseAccountsClient:  &databaseAccountsClient,
		GroupsClient:            &groupsClient,
		IdentitiesClient:        &identitiesClient,
		RoleAssignmentsClient:   &roleAssignmentsClient,
		RoleDefinitionsClient:   &roleDefinitionsClient,
		SecretsClient:           &secretsClient,
		SQLResourcesClient:      &sqlResourcesClient,
		VaultsClient:            &vaultsClient,
	}

	return clientSet, nil
}

type clientPreparer struct {
	authorizer     autorest.Authorizer
	metrics        senddecorator.AzureAPIMetrics
	partnerID      string
	subscriptionID string
}

func (p clientPreparer) prepare(client *autorest.Client, apiService string) {
	client.Authorizer = p.authorizer
	_ = client.AddToUserAgent(p.partnerID)
	_ = client.AddToUserAgent(fmt.Sprintf("%s/%s", project.Name(), project.Version()))
	senddecorator.ConfigureClient(&backpressure.Backpressure{}, client, apiService, p.subscriptionID, p.metrics)
}
