package api

import (
	"github.com/kberg/flashdeck/internal/db"
	"github.com/kberg/flashdeck/internal/realtime"
	"github.com/kberg/flashdeck/internal/repository"
	"github.com/kberg/flashdeck/internal/services"
)

type Server struct {
	DB                 *db.DB
	Hub                *realtime.Hub
	Users              repository.UserRepository
	CategoryService    services.CategoryService
	FlashcardService   services.FlashcardService
	StudyService       services.StudyService
	StatsService       services.StatsService
	GroupService       services.GroupService
	AchievementService services.AchievementService
	ImportService      services.ImportService
	GenerationService  services.GenerationService
	UserService        services.UserService
	JWTSecret          string
	AllowedOrigins     []string
}
