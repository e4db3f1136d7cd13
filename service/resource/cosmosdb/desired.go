package cosmosdb

import (
	"github.com/Azure/azure-sdk-for-go/services/cosmos-db/mgmt/2021-10-15/documentdb"
	"github.com/Azure/go-autorest/autorest/to"

	"github.com/giantswarm/voicelive-operator/service/key"
	"github.com/giantswarm/voicelive-operator/service/stack"
)

const (
	serverlessCapability = "EnableServerless"
)

// newDatabaseAccount computes the desired document database account. The
// account runs in serverless mode with a single write region and session
// consistency, which is all the transcript workload needs.
func newDatabaseAccount(location string, s stack.Stack) documentdb.DatabaseAccountCreateUpdateParameters {
	return documentdb.DatabaseAccountCreateUpdateParameters{
		Kind:     documentdb.DatabaseAccountKindGlobalDocumentDB,
		Location: to.StringPtr(location),
		DatabaseAccountCreateUpdateProperties: &documentdb.DatabaseAccountCreateUpdateProperties{
			DatabaseAccountOfferType: to.StringPtr("Standard"),
			ConsistencyPolicy: &documentdb.ConsistencyPolicy{
				DefaultConsistencyLevel: documentdb.DefaultConsistencyLevelSession,
			},
			Locations: &[]documentdb.Location{
				{
					LocationName:     to.StringPtr(location),
					FailoverPriority: to.Int32Ptr(0),
				},
			},
			Capabilities: &[]documentdb.Capability{
				{
					Name: to.StringPtr(serverlessCapability),
				},
			},
		},
		Tags: key.StackTags(s),
	}
}

func newDatabase() documentdb.SQLDatabaseCreateUpdateParameters {
	return documentdb.SQLDatabaseCreateUpdateParameters{
		SQLDatabaseCreateUpdateProperties: &documentdb.SQLDatabaseCreateUpdateProperties{
			Resource: &documentdb.SQLDatabaseResource{
				ID: to.StringPtr(key.DatabaseName),
			},
			Options: &documentdb.CreateUpdateOptions{},
		},
	}
}

// newContainer computes the desired transcripts container. Documents are
// partitioned by session so one conversation always lands on one partition.
// The default TTL of -1 enables TTL without expiring documents unless a
// document carries its own ttl field.
func newContainer() documentdb.SQLContainerCreateUpdateParameters {
	return documentdb.SQLContainerCreateUpdateParameters{
		SQLContainerCreateUpdateProperties: &documentdb.SQLContainerCreateUpdateProperties{
			Resource: &documentdb.SQLContainerResource{
				ID: to.StringPtr(key.ContainerName),
				PartitionKey: &documentdb.ContainerPartitionKey{
					Paths: &[]string{key.PartitionKeyPath},
					Kind:  documentdb.PartitionKindHash,
				},
				DefaultTTL: to.Int32Ptr(key.ContainerDefaultTTL),
			},
			Options: &documentdb.CreateUpdateOptions{},
		},
	}
}
