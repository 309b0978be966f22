// Command recommend imprime el ranking de candidatos de un usuario usando el
// mismo pipeline que la API. Util para revisar pesos y datos en local.
// Con -token imprime un access token del usuario para llamar a la API a mano.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"swapwise/internal/config"
	"swapwise/internal/db"
	"swapwise/internal/domain"
	"swapwise/internal/geo"
	"swapwise/internal/matching"
	"swapwise/internal/repository"
	"swapwise/internal/service"
)

func main() {
	userID := flag.String("user", "", "id del usuario solicitante")
	limit := flag.Int("limit", 10, "cantidad maxima de candidatos (0 = todos)")
	token := flag.Bool("token", false, "imprimir un access token para -user y salir")
	flag.Parse()

	if strings.TrimSpace(*userID) == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if *token {
		signed, err := service.NewJWTService(cfg.JWTSecret, 15*time.Minute).SignAccessToken(*userID)
		if err != nil {
			log.Fatalf("firmar token: %v", err)
		}
		fmt.Println(signed)
		return
	}

	logger, _ := zap.NewExample()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	profileRepo := repository.NewPgProfileRepository(pool)
	swipeRepo := repository.NewPgSwipeRepository(pool)

	geocoder := geo.NewGoogleClient(cfg.GeocodingBaseURL, cfg.GeocodingAPIKey, cfg.GeocodingTimeout, logger)
	scorer := matching.NewScorer(geo.NewResolver(geocoder, geo.WithLogger(logger)))
	scorer.MaxDistanceKm = cfg.MatchMaxDistanceKm
	scorer.MaxRating = cfg.MatchMaxRating
	recommender := matching.NewRecommender(scorer, cfg.MatchWorkers, logger)
	recSvc := service.NewRecommendationService(logger, profileRepo, swipeRepo, recommender)

	recs, err := recSvc.Recommend(ctx, *userID, *limit)
	if errors.Is(err, service.ErrProfileNotFound) {
		log.Fatalf("perfil %q no existe", *userID)
	}
	if err != nil {
		log.Fatalf("recomendar: %v", err)
	}
	if len(recs) == 0 {
		fmt.Println("Sin candidatos con interes mutuo.")
		return
	}
	printTable(os.Stdout, recs)
}

func printTable(out *os.File, recs []domain.ScoredCandidate) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tNAME\tTOTAL\tLOC\tPREF\tRATING\tKM")
	for i, rec := range recs {
		km := "-"
		if rec.Breakdown.DistanceKm != nil {
			km = fmt.Sprintf("%.1f", *rec.Breakdown.DistanceKm)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%s\n",
			i+1,
			rec.Profile.ID,
			rec.Profile.Name,
			rec.TotalScore,
			rec.Breakdown.Location,
			rec.Breakdown.Preference,
			rec.Breakdown.Rating,
			km,
		)
	}
	w.Flush()
}
