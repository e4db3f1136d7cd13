package service

import (
	"github.com/giantswarm/voicelive-operator/flag/service/azure"
	"github.com/giantswarm/voicelive-operator/flag/service/deployment"
)

type Service struct {
	Azure      azure.Azure
	Deployment deployment.Deployment
}
