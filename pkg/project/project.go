package project

var (
	description string = "The voicelive-operator provisions the Azure resources backing the voice live conversation service."
	gitSHA             = "n/a"
	name        string = "voicelive-operator"
	source      string = "https://github.com/giantswarm/voicelive-operator"
	version            = "1.2.0"
)

func Description() string {
	return description
}

func GitSHA() string {
	return gitSHA
}

func Name() string {
	return name
}

func Source() string {
	return source
}

func Version() string {
	return version
}
