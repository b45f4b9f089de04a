package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository            *UserRepository
	CategoryClassRepository   *CategoryClassRepository
	CategoryRepository        *CategoryRepository
	CandidatureRepository     *CandidatureRepository
	CandidatureFileRepository *CandidatureFileRepository
	VoteRepository            *VoteRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:            NewUserRepository(db),
		CategoryClassRepository:   NewCategoryClassRepository(db),
		CategoryRepository:        NewCategoryRepository(db),
		CandidatureRepository:     NewCandidatureRepository(db),
		CandidatureFileRepository: NewCandidatureFileRepository(db),
		VoteRepository:            NewVoteRepository(db),
	}
}
