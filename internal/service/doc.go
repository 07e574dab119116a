// Package service contains the application-specific use cases of the job board.
// It builds domain records from caller input and coordinates the persistence
// interfaces defined in internal/store, without depending on a concrete
// storage implementation.
//
// Services receive their dependencies through constructor injection. Errors are
// wrapped with the failing operation; store sentinels such as
// store.ErrJobNotFound remain reachable through errors.Is so the API layer can
// map them to status codes.
package service
