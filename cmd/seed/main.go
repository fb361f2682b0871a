// Command seed fills a development database with listings, reviews and
// storefront products through the same repositories the API uses.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	mongorepo "github.com/hostlink-ma/hostlink-services/api/internal/infrastructure/mongo"
	"github.com/hostlink-ma/hostlink-services/api/internal/logging"
	shopdomain "github.com/hostlink-ma/hostlink-services/api/internal/shop/domain"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedOptions struct {
	envFile         string
	perKind         int
	reviewsPer      int
	dropCollections bool
	randomSeed      int64
}

type collections struct {
	concierges string
	cleanings  string
	designers  string
	reviews    string
	leads      string
	products   string
}

var (
	cities = []struct{ fr, en, ar string }{
		{"Marrakech", "Marrakesh", "مراكش"},
		{"Casablanca", "Casablanca", "الدار البيضاء"},
		{"Agadir", "Agadir", "أكادير"},
		{"Tanger", "Tangier", "طنجة"},
		{"Fès", "Fez", "فاس"},
		{"Essaouira", "Essaouira", "الصويرة"},
	}
	services = map[domain.Kind][]string{
		domain.KindConcierge: {"Accueil voyageurs", "Gestion des annonces", "Ménage", "Check-in autonome", "Tarification dynamique"},
		domain.KindCleaning:  {"Ménage fin de séjour", "Blanchisserie", "Réassort consommables", "Nettoyage vitres"},
		domain.KindDesigner:  {"Home staging", "Décoration", "Photographie", "Aménagement"},
	}
	styles      = []string{"Marocain moderne", "Bohème", "Minimaliste", "Riad traditionnel"}
	namePrefix  = []string{"Atlas", "Medina", "Oasis", "Kasbah", "Palmeraie", "Zellige", "Argan"}
	nameSuffix  = map[domain.Kind]string{domain.KindConcierge: "Conciergerie", domain.KindCleaning: "Clean", domain.KindDesigner: "Design Studio"}
	authors     = []string{"Yasmine", "Karim", "Sophie", "Mehdi", "Laura", "Omar", "Nadia"}
	commentBank = []string{
		"Service impeccable, réactifs et très professionnels.",
		"Bonne communication, quelques retards au check-in.",
		"Nos revenus ont nettement augmenté depuis la prise en charge.",
		"Travail soigné, je recommande sans hésiter.",
		"Correct dans l'ensemble mais le suivi pourrait être meilleur.",
	}
)

func main() {
	opts := parseFlags()
	if err := loadEnv(opts.envFile); err != nil {
		slog.Error("failed to load env file", "file", opts.envFile, "error", err)
		os.Exit(1)
	}
	logger := logging.New(logging.Options{Level: "info", Format: envOrDefault("LOG_FORMAT", "color")})

	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "hostlink")
	cols := collections{
		concierges: envOrDefault("CONCIERGE_COLLECTION", "concierges"),
		cleanings:  envOrDefault("CLEANING_COLLECTION", "cleanings"),
		designers:  envOrDefault("DESIGNER_COLLECTION", "designers"),
		reviews:    envOrDefault("REVIEW_COLLECTION", "reviews"),
		leads:      envOrDefault("LEAD_COLLECTION", "calculator_leads"),
		products:   envOrDefault("PRODUCT_COLLECTION", "products"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(dbName)

	if err := run(ctx, logger, db, cols, opts); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seed complete", "mongo", mongoURI, "db", dbName)
}

func run(ctx context.Context, logger *slog.Logger, db *mongo.Database, cols collections, opts seedOptions) error {
	if opts.dropCollections {
		for _, name := range []string{cols.concierges, cols.cleanings, cols.designers, cols.reviews, cols.products} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				logger.Warn("failed to drop collection", "collection", name, "error", err)
			}
		}
	}

	listingCols := mongorepo.ListingCollections{Concierges: cols.concierges, Cleanings: cols.cleanings, Designers: cols.designers}
	if err := mongorepo.EnsureIndexes(ctx, db, mongorepo.IndexNames{
		Listings: listingCols,
		Reviews:  cols.reviews,
		Leads:    cols.leads,
		Products: cols.products,
	}); err != nil {
		return err
	}

	listings := mongorepo.NewListingRepository(db, listingCols)
	reviews := mongorepo.NewReviewRepository(db, cols.reviews)
	products := mongorepo.NewProductRepository(db, cols.products)
	rng := rand.New(rand.NewSource(opts.randomSeed))
	now := time.Now().UTC()

	var listingCount, reviewCount int
	for _, kind := range []domain.Kind{domain.KindConcierge, domain.KindCleaning, domain.KindDesigner} {
		for i := 0; i < opts.perKind; i++ {
			listing, err := generateListing(rng, kind, i, now)
			if err != nil {
				return err
			}
			id, err := listings.Create(ctx, listing)
			if err != nil {
				return fmt.Errorf("insert %s listing: %w", kind, err)
			}
			listingCount++

			if listing.Core().Status != domain.StatusApproved {
				continue
			}
			target, err := domain.NewReviewTarget(kind, id)
			if err != nil {
				return err
			}
			for j := 0; j < opts.reviewsPer; j++ {
				review, err := generateReview(rng, target, now)
				if err != nil {
					return err
				}
				if _, err := reviews.Create(ctx, review); err != nil {
					return fmt.Errorf("insert review: %w", err)
				}
				reviewCount++
			}
		}
	}

	for _, product := range catalogue(now) {
		if err := products.Upsert(ctx, product); err != nil {
			return err
		}
	}

	logger.Info("seeded", "listings", listingCount, "reviews", reviewCount, "products", len(catalogue(now)))
	return nil
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envFile, "env", ".env", "env file to read before the environment")
	flag.IntVar(&opts.perKind, "listings", 8, "listings generated per kind")
	flag.IntVar(&opts.reviewsPer, "reviews", 4, "reviews generated per approved listing")
	flag.BoolVar(&opts.dropCollections, "drop", true, "drop existing collections first")
	flag.Int64Var(&opts.randomSeed, "seed", 20240601, "random seed")
	flag.Parse()
	return opts
}

func loadEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// generateListing makes most listings approved, with a few pending and
// rejected ones and a pending photo queue on every third.
func generateListing(rng *rand.Rand, kind domain.Kind, index int, now time.Time) (domain.Listing, error) {
	name := fmt.Sprintf("%s %s", namePrefix[rng.Intn(len(namePrefix))], nameSuffix[kind])
	if index > 0 {
		name = fmt.Sprintf("%s %d", name, index+1)
	}
	home := cities[rng.Intn(len(cities))]
	slug := slugify(name)

	content := domain.ListingContent{
		Name:          name,
		Description:   domain.NewLocalizedText(fmt.Sprintf("%s accompagne les hôtes à %s.", name, home.fr), fmt.Sprintf("%s supports hosts in %s.", name, home.en), ""),
		City:          domain.NewLocalizedText(home.fr, home.en, home.ar),
		Logo:          fmt.Sprintf("https://picsum.photos/seed/%s-logo/200/200", slug),
		PortfolioURLs: []string{fmt.Sprintf("https://%s.ma/realisations", slug)},
		Email:         fmt.Sprintf("contact@%s.ma", slug),
		Phone:         fmt.Sprintf("+2126%08d", rng.Intn(100000000)),
		Website:       fmt.Sprintf("https://%s.ma", slug),
		Services:      domain.LocalizedList{FR: pickUnique(rng, services[kind], 2+rng.Intn(2))},
		CitiesCovered: domain.LocalizedList{FR: []string{home.fr}, EN: []string{home.en}},
	}
	if kind == domain.KindDesigner {
		content.Styles = domain.LocalizedList{FR: pickUnique(rng, styles, 2)}
	}

	listing, err := domain.NewListing(kind, fmt.Sprintf("seed-owner-%d", rng.Intn(5)+1), content, now.Add(-time.Duration(rng.Intn(90*24))*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("generate %s listing: %w", kind, err)
	}
	core := listing.Core()
	switch {
	case index%7 == 5:
		core.Status = domain.StatusRejected
	case index%4 == 3:
		core.Status = domain.StatusPending
	default:
		core.Status = domain.StatusApproved
	}
	core.IsPremium = index%5 == 0
	core.PortfolioPhotos = []string{fmt.Sprintf("https://picsum.photos/seed/%s-1/800/600", slug)}
	if index%3 == 0 {
		core.PortfolioPhotosPending = []string{fmt.Sprintf("https://picsum.photos/seed/%s-2/800/600", slug)}
	}
	return listing, nil
}

// generateReview approves four out of five reviews so the admin queue has work.
func generateReview(rng *rand.Rand, target domain.ReviewTarget, now time.Time) (domain.Review, error) {
	review, err := domain.NewReview(target, authors[rng.Intn(len(authors))], 3+rng.Intn(3), commentBank[rng.Intn(len(commentBank))], now.Add(-time.Duration(rng.Intn(60*24))*time.Hour))
	if err != nil {
		return domain.Review{}, fmt.Errorf("generate review: %w", err)
	}
	if rng.Intn(5) != 0 {
		review.Status = domain.StatusApproved
	}
	return review, nil
}

func catalogue(now time.Time) []shopdomain.Product {
	return []shopdomain.Product{
		{
			Slug:        "guide-lancer-airbnb-maroc",
			Title:       map[string]string{"fr": "Guide : lancer son Airbnb au Maroc", "en": "Guide: launching your Airbnb in Morocco"},
			Description: map[string]string{"fr": "Réglementation, fiscalité et premières réservations.", "en": "Regulation, taxes and first bookings."},
			Price:       199,
			Currency:    shopdomain.DefaultCurrency,
			FileKey:     "products/guide-lancer-airbnb-maroc.pdf",
			Active:      true,
			CreatedAt:   now,
		},
		{
			Slug:        "checklist-menage-voyageurs",
			Title:       map[string]string{"fr": "Checklist ménage entre voyageurs", "en": "Turnover cleaning checklist"},
			Description: map[string]string{"fr": "La liste utilisée par les équipes de ménage professionnelles."},
			Price:       49,
			Currency:    shopdomain.DefaultCurrency,
			FileKey:     "products/checklist-menage-voyageurs.pdf",
			Active:      true,
			CreatedAt:   now,
		},
	}
}

func pickUnique(rng *rand.Rand, source []string, count int) []string {
	if count > len(source) {
		count = len(source)
	}
	picked := make([]string, 0, count)
	for _, idx := range rng.Perm(len(source))[:count] {
		picked = append(picked, source[idx])
	}
	return picked
}

func slugify(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
