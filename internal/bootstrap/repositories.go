package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndifor/vitrine/internal/audit"
	"github.com/ndifor/vitrine/internal/database/postgres"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	// Slot stays concrete: the same repository backs the state machine guard,
	// the reconciler scan, the storefront reads and the admin listings, each
	// through its own narrower interface.
	Slot  *postgres.SlotRepository
	Audit audit.Repository
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Slot:  postgres.NewSlotRepository(dbPool),
		Audit: postgres.NewTransitionRepository(dbPool),
	}
}
