package main

import (
	"context"
	"fmt"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/microkit/command"
	microserver "github.com/giantswarm/microkit/server"
	"github.com/giantswarm/micrologger"
	"github.com/giantswarm/versionbundle"
	"github.com/spf13/viper"

	"github.com/giantswarm/voicelive-operator/flag"
	"github.com/giantswarm/voicelive-operator/pkg/project"
	"github.com/giantswarm/voicelive-operator/server"
	"github.com/giantswarm/voicelive-operator/service"
)

var (
	f *flag.Flag = flag.New()
)

func main() {
	err := mainError()
	if err != nil {
		panic(fmt.Sprintf("%#v\n", err))
	}
}

func mainError() error {
	var err error

	ctx := context.Background()
	logger, err := micrologger.New(micrologger.Config{})
	if err != nil {
		return microerror.Mask(err)
	}

	// We define a server factory to create the custom server once all command
	// line flags are parsed and all microservice configuration is sorted out.
	serverFactory := func(v *viper.Viper) microserver.Server {
		// Create a new custom service which implements business logic.
		var newService *service.Service
		{
			c := service.Config{
				Logger: logger,

				Flag:  f,
				Viper: v,

				Description: project.Description(),
				GitCommit:   project.GitSHA(),
				ProjectName: project.Name(),
				Source:      project.Source(),
				Version:     project.Version(),
			}

			newService, err = service.New(c)
			if err != nil {
				panic(fmt.Sprintf("%#v", microerror.Mask(err)))
			}

			go newService.Boot(ctx)
		}

		// Create a new custom server which bundles our endpoints.
		var newServer microserver.Server
		{
			c := server.Config{
				Logger:  logger,
				Service: newService,
				Viper:   v,

				ProjectName: project.Name(),
			}

			newServer, err = server.New(c)
			if err != nil {
				panic(fmt.Sprintf("%#v", microerror.Mask(err)))
			}
		}

		return newServer
	}

	// Create a new microkit command which manages our custom microservice.
	var newCommand command.Command
	{
		c := command.Config{
			Logger:        logger,
			ServerFactory: serverFactory,

			Description:    project.Description(),
			GitCommit:      project.GitSHA(),
			Name:           project.Name(),
			Source:         project.Source(),
			VersionBundles: []versionbundle.Bundle{project.NewVersionBundle()},
		}

		newCommand, err = command.New(c)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	daemonCommand := newCommand.DaemonCommand().CobraCommand()

	daemonCommand.PersistentFlags().String(f.Service.Azure.ClientID, "", "ID of the Active Directory Service Principal.")
	daemonCommand.PersistentFlags().String(f.Service.Azure.ClientSecret, "", "Secret of the Active Directory Service Principal.")
	// The cloud environment identifier. Takes values from https://github.com/Azure/go-autorest/blob/ec5f4903f77ed9927ac95b19ab8e44ada64c1356/autorest/azure/environments.go#L13
	daemonCommand.PersistentFlags().String(f.Service.Azure.Cloud, "AZUREPUBLICCLOUD", "Azure Cloud Environment identifier.")
	daemonCommand.PersistentFlags().String(f.Service.Azure.Location, "", "Location the stack's regional resources are created in.")
	daemonCommand.PersistentFlags().String(f.Service.Azure.PartnerID, "", "Partner ID used for usage attribution in the API user agent.")
	daemonCommand.PersistentFlags().String(f.Service.Azure.SubscriptionID, "", "ID of the Azure Subscription.")
	daemonCommand.PersistentFlags().String(f.Service.Azure.TenantID, "", "ID of the Active Directory Tenant.")
	daemonCommand.PersistentFlags().String(f.Service.Deployment.Environment, "", "Environment name the resource names are derived from, e.g. dev or prod.")
	daemonCommand.PersistentFlags().String(f.Service.Deployment.Principal.ID, "", "Object ID of the application principal the roles are assigned to.")
	daemonCommand.PersistentFlags().String(f.Service.Deployment.ResourceGroup, "", "Resource group name. When empty the name is derived from the environment.")
	daemonCommand.PersistentFlags().Duration(f.Service.Deployment.ResyncPeriod, 0, "Pause between two full deployment passes. Zero selects the default.")
	daemonCommand.PersistentFlags().String(f.Service.Deployment.Suffix, "", "Unique suffix appended to globally visible resource names.")
	daemonCommand.PersistentFlags().StringToString(f.Service.Deployment.Tags, nil, "Additional tags applied to every resource of the stack.")
	daemonCommand.PersistentFlags().Bool(f.Service.Deployment.Teardown, false, "Delete the stack instead of deploying it and exit.")

	newCommand.CobraCommand().Execute()

	return nil
}
