package cli

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mwarren/crmapi/internal/core/domain"
)

var seedCount int

var (
	seedFirstNames = []string{"John", "Jane", "Michael", "Sarah", "David", "Emma", "Robert", "Lisa", "James", "Mary"}
	seedLastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	seedCompanies  = []string{"Acme Corp", "TechStart Inc", "Global Solutions", "Digital Ventures", "Innovate Labs", "Future Systems", "Smart Tech", "Data Dynamics", "Cloud Nine", "Quantum Software"}
	seedCities     = []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose"}
	seedStates     = []string{"NY", "CA", "IL", "TX", "AZ", "PA", "TX", "CA", "TX", "CA"}
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with sample clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		// Fixed seed keeps the sample data set reproducible.
		rng := rand.New(rand.NewSource(42))
		now := time.Now().UTC()

		for i := 1; i <= seedCount; i++ {
			firstName := seedFirstNames[rng.Intn(len(seedFirstNames))]
			lastName := seedLastNames[rng.Intn(len(seedLastNames))]
			cityIdx := rng.Intn(len(seedCities))

			client := &domain.Client{
				ID:           uuid.New().String(),
				FirstName:    firstName,
				LastName:     lastName,
				Email:        fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(firstName), strings.ToLower(lastName), i),
				AddressLine1: ptr(fmt.Sprintf("%d Main Street", rng.Intn(9998)+1)),
				City:         ptr(seedCities[cityIdx]),
				State:        ptr(seedStates[cityIdx]),
				PostalCode:   ptr(fmt.Sprintf("%d", rng.Intn(90000)+10000)),
				Country:      ptr("USA"),
				IsActive:     rng.Intn(10) > 1,
				CreatedAt:    now.AddDate(0, 0, -rng.Intn(365)),
				UpdatedAt:    now.AddDate(0, 0, -rng.Intn(30)),
			}
			if rng.Intn(2) == 0 {
				client.Phone = ptr(fmt.Sprintf("%d-%d-%d", rng.Intn(800)+200, rng.Intn(800)+200, rng.Intn(9000)+1000))
			}
			if rng.Intn(2) == 0 {
				client.Company = ptr(seedCompanies[rng.Intn(len(seedCompanies))])
			}
			if rng.Intn(2) == 0 {
				client.AddressLine2 = ptr(fmt.Sprintf("Suite %d", rng.Intn(900)+100))
			}

			if err := services.ClientRepo.Create(cmd.Context(), client); err != nil {
				return fmt.Errorf("failed to seed client %d: %w", i, err)
			}
		}

		fmt.Printf("Seeded %d sample clients into %s\n", seedCount, cfg.DBPath)
		return nil
	},
}

func ptr(s string) *string {
	return &s
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 150, "number of sample clients to create")
	rootCmd.AddCommand(seedCmd)
}
