package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

const (
	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".mdlisting.yaml"
	// GlobalConfigDirectoryName is the directory under the home directory holding global configuration.
	GlobalConfigDirectoryName = ".mdlisting"
	// GlobalConfigFileName is the name of the global configuration file.
	GlobalConfigFileName = "config.yaml"
	// EnvironmentPrefix prefixes environment variables read by the configuration loader.
	EnvironmentPrefix = "MDLISTING"
	// ApplicationExecutionFailedMessage is logged when the command fails.
	ApplicationExecutionFailedMessage = "mdlisting failed"
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
)
