package serviceiface

// Service is the unit the app manager starts and stops. Start must not
// block; long-running work belongs in goroutines owned by the service.
type Service interface {
	Name() string
	Start() error
	Stop() error
}
