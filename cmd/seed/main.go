package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	adminapp "github.com/reviewly/api/internal/admin/application"
	"github.com/reviewly/api/internal/auth"
	"github.com/reviewly/api/internal/config"
	"github.com/reviewly/api/internal/domain"
	mongodoc "github.com/reviewly/api/internal/infrastructure/mongo"
)

type seedOptions struct {
	envFile         string
	staffCount      int
	reviewsPerStaff int
	dropCollections bool
	randomSeed      int64
}

var sampleNames = []string{
	"Ana García", "Luis Fernández", "María López", "Carlos Ruiz", "Lucía Martín",
	"Javier Gómez", "Sofía Díaz", "Diego Torres", "Elena Navarro", "Pablo Romero",
}

var sampleComments = []string{
	"Muy amable y atenta.",
	"Rápido y con buenas recomendaciones.",
	"Todo correcto.",
	"Tardó un poco en traer la cuenta.",
	"",
}

func main() {
	opts := parseFlags()

	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil {
			log.Fatal().Err(err).Str("file", opts.envFile).Msg("load env file")
		}
	}
	cfg, err := config.Load()
	log.Logger = cfg.Logger
	if err != nil && !errors.Is(err, config.ErrMissingSecret) {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(cfg.MongoDatabase)
	names := mongodoc.Collections{
		Staff:     cfg.StaffCollection,
		Reviews:   cfg.ReviewCollection,
		Customers: cfg.CustomerCollection,
		Accounts:  cfg.AccountCollection,
	}

	if opts.dropCollections {
		if err := dropCollections(ctx, db, names); err != nil {
			log.Fatal().Err(err).Msg("drop collections")
		}
		log.Info().Msg("dropped existing collections")
	}
	if err := mongodoc.EnsureIndexes(ctx, db, names); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	seedAdmin(ctx, cfg, mongodoc.NewAccountRepository(db, names.Accounts))

	staffRepo := mongodoc.NewStaffRepository(db, names.Staff)
	reviewRepo := mongodoc.NewReviewRepository(db, names.Reviews)
	rng := rand.New(rand.NewSource(opts.randomSeed))

	staff, err := seedStaff(ctx, adminapp.NewStaffService(staffRepo, reviewRepo, time.Now), rng, opts.staffCount)
	if err != nil {
		log.Fatal().Err(err).Msg("seed staff")
	}
	reviews, err := seedReviews(ctx, reviewRepo, rng, staff, opts.reviewsPerStaff)
	if err != nil {
		log.Fatal().Err(err).Msg("seed reviews")
	}

	log.Info().
		Int("staff", len(staff)).
		Int("reviews", reviews).
		Int64("randomSeed", opts.randomSeed).
		Msg("seed complete")
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envFile, "env-file", "", "extra env file loaded before .env")
	flag.IntVar(&opts.staffCount, "staff", 5, "sample staff members to create")
	flag.IntVar(&opts.reviewsPerStaff, "reviews", 8, "sample reviews per staff member")
	flag.BoolVar(&opts.dropCollections, "drop", false, "drop existing collections first")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "random seed (for reproducible data)")
	flag.Parse()

	if opts.staffCount < 0 {
		opts.staffCount = 0
	}
	if opts.staffCount > len(sampleNames) {
		opts.staffCount = len(sampleNames)
	}
	if opts.reviewsPerStaff < 0 {
		opts.reviewsPerStaff = 0
	}
	return opts
}

func dropCollections(ctx context.Context, db *mongo.Database, names mongodoc.Collections) error {
	for _, name := range []string{names.Staff, names.Reviews, names.Customers, names.Accounts} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
	}
	return nil
}

// seedAdmin goes through the bootstrap registration path, so it only creates an account
// while the collection is empty.
func seedAdmin(ctx context.Context, cfg config.Config, repo adminapp.AccountRepository) {
	if cfg.SeedAdmin.Password == "" {
		log.Warn().Msg("SEED_ADMIN_PASSWORD empty, skipping admin account")
		return
	}
	// Register never issues tokens, so no token manager is needed here.
	accounts := adminapp.NewAccountService(repo, auth.NewBcryptHasher(), nil, time.Now)
	account, err := accounts.Register(ctx, nil, adminapp.CreateAccountCommand{
		Username: cfg.SeedAdmin.Username,
		Email:    cfg.SeedAdmin.Email,
		Password: cfg.SeedAdmin.Password,
		Role:     string(domain.RoleAdmin),
	})
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		log.Info().Msg("accounts already exist, admin not created")
	case err != nil:
		log.Fatal().Err(err).Msg("seed admin")
	default:
		log.Info().Str("username", account.Username).Msg("admin account created")
	}
}

func seedStaff(ctx context.Context, svc adminapp.StaffService, rng *rand.Rand, count int) ([]domain.StaffMember, error) {
	out := make([]domain.StaffMember, 0, count)
	for _, i := range rng.Perm(len(sampleNames))[:count] {
		gender := domain.GenderWaitress
		if i%2 == 1 {
			gender = domain.GenderWaiter
		}
		member, err := svc.Create(ctx, adminapp.CreateStaffCommand{Name: sampleNames[i], Gender: string(gender)})
		if err != nil {
			return nil, err
		}
		out = append(out, *member)
	}
	return out, nil
}

// seedReviews writes directly through the repository so createdAt can be spread over the last
// 30 days; each review gets its own documentation-range address.
func seedReviews(ctx context.Context, repo *mongodoc.ReviewRepository, rng *rand.Rand, staff []domain.StaffMember, perStaff int) (int, error) {
	total := 0
	now := time.Now()
	for _, member := range staff {
		for j := 0; j < perStaff; j++ {
			sub := domain.Submission{
				StaffID: member.ID,
				Scores: domain.CategoryScores{
					Attention:     randomScore(rng),
					Cleanliness:   randomScore(rng),
					Speed:         randomScore(rng),
					MenuKnowledge: randomScore(rng),
					Presentation:  randomScore(rng),
				},
				Comment: sampleComments[rng.Intn(len(sampleComments))],
			}
			createdAt := now.Add(-time.Duration(rng.Int63n(int64(30 * 24 * time.Hour))))
			address := fmt.Sprintf("203.0.113.%d", total%254+1)
			review, err := domain.NewReview(sub, address, createdAt)
			if err != nil {
				return total, err
			}
			if err := repo.Create(ctx, &review); err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}

// randomScore skews towards 4 and 5.
func randomScore(rng *rand.Rand) int {
	return domain.MaxScore - rng.Intn(rng.Intn(domain.MaxScore)+1)
}
