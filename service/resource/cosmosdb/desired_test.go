package cosmosdb

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/services/cosmos-db/mgmt/2021-10-15/documentdb"

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

func Test_newDatabaseAccount(t *testing.T) {
	params := newDatabaseAccount("westeurope", testStack())

	if params.Kind != documentdb.DatabaseAccountKindGlobalDocumentDB {
		t.Fatalf("got kind %q, want %q", params.Kind, documentdb.DatabaseAccountKindGlobalDocumentDB)
	}

	props := params.DatabaseAccountCreateUpdateProperties
	if props == nil {
		t.Fatal("got nil properties")
	}
	if props.ConsistencyPolicy.DefaultConsistencyLevel != documentdb.DefaultConsistencyLevelSession {
		t.Fatalf("got consistency %q, want session", props.ConsistencyPolicy.DefaultConsistencyLevel)
	}
	if len(*props.Locations) != 1 {
		t.Fatalf("got %d locations, want 1", len(*props.Locations))
	}

	serverless := false
	for _, c := range *props.Capabilities {
		if c.Name != nil && *c.Name == serverlessCapability {
			serverless = true
		}
	}
	if !serverless {
		t.Fatal("account is not serverless")
	}
}

func Test_newContainer(t *testing.T) {
	params := newContainer()

	resource := params.SQLContainerCreateUpdateProperties.Resource
	if resource == nil {
		t.Fatal("got nil container resource")
	}
	if *resource.ID != "transcripts" {
		t.Fatalf("got container %q, want %q", *resource.ID, "transcripts")
	}

	pk := resource.PartitionKey
	if pk == nil {
		t.Fatal("got nil partition key")
	}
	if len(*pk.Paths) != 1 || (*pk.Paths)[0] != "/sessionId" {
		t.Fatalf("got partition key paths %v, want [/sessionId]", *pk.Paths)
	}
	if pk.Kind != documentdb.PartitionKindHash {
		t.Fatalf("got partition kind %q, want hash", pk.Kind)
	}

	if resource.DefaultTTL == nil || *resource.DefaultTTL != -1 {
		t.Fatalf("got default ttl %v, want -1", resource.DefaultTTL)
	}

	// Serverless accounts must not carry throughput options.
	options := params.SQLContainerCreateUpdateProperties.Options
	if options == nil || options.Throughput != nil {
		t.Fatalf("got options %v, want empty", options)
	}
}

func Test_newDatabase(t *testing.T) {
	params := newDatabase()

	resource := params.SQLDatabaseCreateUpdateProperties.Resource
	if resource == nil || *resource.ID != "conversationdb" {
		t.Fatalf("got database resource %v, want conversationdb", resource)
	}
}
