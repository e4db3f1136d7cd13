// Package service implements business logic of the operator. It bundles the
// deployer applying the Azure resources, the health check and the metrics
// exporter.
package service

import (
	"context"
	"os"
	"sync"

	"github.com/giantswarm/microendpoint/service/version"
	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	"github.com/giantswarm/versionbundle"
	"github.com/spf13/viper"

	"github.com/giantswarm/voicelive-operator/client"
	"github.com/giantswarm/voicelive-operator/flag"
	"github.com/giantswarm/voicelive-operator/pkg/project"
	"github.com/giantswarm/voicelive-operator/service/collector"
	"github.com/giantswarm/voicelive-operator/service/deployer"
	"github.com/giantswarm/voicelive-operator/service/healthz"
	"github.com/giantswarm/voicelive-operator/service/resource/aiservices"
	"github.com/giantswarm/voicelive-operator/service/resource/communication"
	"github.com/giantswarm/voicelive-operator/service/resource/cosmosdb"
	"github.com/giantswarm/voicelive-operator/service/resource/identity"
	"github.com/giantswarm/voicelive-operator/service/resource/keyvault"
	"github.com/giantswarm/voicelive-operator/service/resource/probe"
	"github.com/giantswarm/voicelive-operator/service/resource/resourcegroup"
	"github.com/giantswarm/voicelive-operator/service/resource/roleassignment"
	"github.com/giantswarm/voicelive-operator/service/stack"
)

// Config represents the configuration used to create a new service.
type Config struct {
	Logger micrologger.Logger

	Flag  *flag.Flag
	Viper *viper.Viper

	Description string
	GitCommit   string
	ProjectName string
	Source      string
	Version     string
}

type Service struct {
	Healthz *healthz.Service
	Version *version.Service

	bootOnce     sync.Once
	collectorSet *collector.Set
	deployer     *deployer.Deployer
	logger       micrologger.Logger
	teardown     bool
}

// New creates a new configured service object.
func New(config Config) (*Service, error) {
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}
	if config.Flag == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Flag must not be empty", config)
	}
	if config.Viper == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Viper must not be empty", config)
	}
	if config.Description == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.Description must not be empty", config)
	}
	if config.GitCommit == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.GitCommit must not be empty", config)
	}
	if config.ProjectName == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.ProjectName must not be empty", config)
	}
	if config.Source == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.Source must not be empty", config)
	}

	var err error

	azureConfig := client.AzureClientSetConfig{
		ClientID:       config.Viper.GetString(config.Flag.Service.Azure.ClientID),
		ClientSecret:   config.Viper.GetString(config.Flag.Service.Azure.ClientSecret),
		Cloud:          config.Viper.GetString(config.Flag.Service.Azure.Cloud),
		PartnerID:      config.Viper.GetString(config.Flag.Service.Azure.PartnerID),
		SubscriptionID: config.Viper.GetString(config.Flag.Service.Azure.SubscriptionID),
		TenantID:       config.Viper.GetString(config.Flag.Service.Azure.TenantID),
	}

	location := config.Viper.GetString(config.Flag.Service.Azure.Location)

	deploymentStack := stack.Stack{
		Environment:   config.Viper.GetString(config.Flag.Service.Deployment.Environment),
		Location:      location,
		PrincipalID:   config.Viper.GetString(config.Flag.Service.Deployment.Principal.ID),
		ResourceGroup: config.Viper.GetString(config.Flag.Service.Deployment.ResourceGroup),
		Suffix:        config.Viper.GetString(config.Flag.Service.Deployment.Suffix),
		Tags:          config.Viper.GetStringMapString(config.Flag.Service.Deployment.Tags),
	}

	var apiMetricsCollector *collector.AzureAPIMetricsCollector
	{
		c := collector.AzureAPIMetricsConfig{
			Logger: config.Logger,
		}

		apiMetricsCollector, err = collector.NewAzureAPIMetricsCollector(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var clientSet *client.AzureClientSet
	{
		clientSet, err = client.NewAzureClientSet(azureConfig, apiMetricsCollector)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var resourceGroupResource *resourcegroup.Resource
	{
		c := resourcegroup.Config{
			ClientSet: clientSet,
			Logger:    config.Logger,

			Location: location,
		}

		resourceGroupResource, err = resourcegroup.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var identityResource *identity.Resource
	{
		c := identity.Config{
			ClientSet: clientSet,
			Logger:    config.Logger,

			Location: location,
		}

		identityResource, err = identity.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var aiServicesResource *aiservices.Resource
	{
		c := aiservices.Config{
			ClientSet: clientSet,
			Logger:    config.Logger,
		}

		aiServicesResource, err = aiservices.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var communicationResource *communication.Resource
	{
		c := communication.Config{
			ClientSet: clientSet,
			Logger:    config.Logger,
		}

		communicationResource, err = communication.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var cosmosDBResource *cosmosdb.Resource
	{
		c := cosmosdb.Config{
			ClientSet: clientSet,
			Logger:    config.Logger,

			Location: location,
		}

		cosmosDBResource, err = cosmosdb.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var keyVaultResource *keyvault.Resource
	{
		c := keyvault.Config{
			ClientSet: clientSet,
			Logger:    config.Logger,

			Location: location,
		}

		keyVaultResource, err = keyvault.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var roleAssignmentResource *roleassignment.Resource
	{
		c := roleassignment.Config{
			ClientSet: clientSet,
			Logger:    config.Logger,
		}

		roleAssignmentResource, err = roleassignment.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var probeResource *probe.Resource
	{
		c := probe.Config{
			ClientSet: clientSet,
			Logger:    config.Logger,
		}

		probeResource, err = probe.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var stackDeployer *deployer.Deployer
	{
		c := deployer.Config{
			Logger: config.Logger,

			// Resources within one phase are independent of each other and
			// run concurrently. Later phases read outputs of earlier ones.
			Phases: [][]deployer.Resource{
				{resourceGroupResource},
				{identityResource},
				{aiServicesResource, communicationResource, cosmosDBResource},
				{keyVaultResource},
				{roleAssignmentResource},
				{probeResource},
			},
			ResyncPeriod: config.Viper.GetDuration(config.Flag.Service.Deployment.ResyncPeriod),
			Stack:        deploymentStack,
		}

		stackDeployer, err = deployer.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var collectorSet *collector.Set
	{
		c := collector.SetConfig{
			ClientSet: clientSet,
			Logger:    config.Logger,

			APIMetricsCollector: apiMetricsCollector,
			Stack:               deploymentStack,
		}

		collectorSet, err = collector.NewSet(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var healthzService *healthz.Service
	{
		c := healthz.Config{
			ClientSet: clientSet,
			Logger:    config.Logger,
		}

		healthzService, err = healthz.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var versionService *version.Service
	{
		c := version.Config{
			Description:    config.Description,
			GitCommit:      config.GitCommit,
			Name:           config.ProjectName,
			Source:         config.Source,
			Version:        config.Version,
			VersionBundles: []versionbundle.Bundle{project.NewVersionBundle()},
		}

		versionService, err = version.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	s := &Service{
		Healthz: healthzService,
		Version: versionService,

		bootOnce:     sync.Once{},
		collectorSet: collectorSet,
		deployer:     stackDeployer,
		logger:       config.Logger,
		teardown:     config.Viper.GetBool(config.Flag.Service.Deployment.Teardown),
	}

	return s, nil
}

// Boot starts the service components. With teardown requested the stack is
// deleted instead and the process exits.
func (s *Service) Boot(ctx context.Context) {
	s.bootOnce.Do(func() {
		if s.teardown {
			err := s.deployer.EnsureDeleted(ctx)
			if err != nil {
				s.logger.LogCtx(ctx, "level", "error", "message", "teardown failed", "stack", microerror.JSON(err))
				os.Exit(1)
			}

			s.logger.LogCtx(ctx, "level", "debug", "message", "teardown done")
			os.Exit(0)
		}

		go s.collectorSet.Boot(ctx) // nolint: errcheck

		go s.deployer.Boot(ctx)
	})
}
