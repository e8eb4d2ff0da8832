package container

import "github.com/pixie-sh/errors-go"

var (
	ContainerErrorCodeBase = 76000

	ServiceNotFoundErrorCode     = errors.NewErrorCode("ServiceNotFoundErrorCode", ContainerErrorCodeBase+404)
	CircularDependencyErrorCode  = errors.NewErrorCode("CircularDependencyErrorCode", ContainerErrorCodeBase+508)
	FactoryExecutionErrorCode    = errors.NewErrorCode("FactoryExecutionErrorCode", ContainerErrorCodeBase+500)
	DecoratorExecutionErrorCode  = errors.NewErrorCode("DecoratorExecutionErrorCode", ContainerErrorCodeBase+501)
	InvalidServiceNameErrorCode  = errors.NewErrorCode("InvalidServiceNameErrorCode", ContainerErrorCodeBase+400)
	ServiceTypeMismatchErrorCode = errors.NewErrorCode("ServiceTypeMismatchErrorCode", ContainerErrorCodeBase+422)
	ConfigurationLookupErrorCode = errors.NewErrorCode("ConfigurationLookupErrorCode", ContainerErrorCodeBase+424)
	StructMapMismatchErrorCode   = errors.NewErrorCode("StructMapMismatchErrorCode", ContainerErrorCodeBase+423)
)
