package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	TokenRepository       *TokenRepository
	DocumentRepository    *DocumentRepository
	PostRepository        *PostRepository
	MoodRepository        *MoodRepository
	AppointmentRepository *AppointmentRepository
	ResourceRepository    *ResourceRepository
	ScreeningRepository   *ScreeningRepository
	InsightRepository     *InsightRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		TokenRepository:       NewTokenRepository(db),
		DocumentRepository:    NewDocumentRepository(db),
		PostRepository:        NewPostRepository(db),
		MoodRepository:        NewMoodRepository(db),
		AppointmentRepository: NewAppointmentRepository(db),
		ResourceRepository:    NewResourceRepository(db),
		ScreeningRepository:   NewScreeningRepository(db),
		InsightRepository:     NewInsightRepository(db),
	}
}
