// Package seed creates a handful of demo applications on startup so a
// fresh local portal has something to show. Gated behind SEED_DEMO_DATA
// and skipped whenever any application already exists.
package seed

import (
	"context"
	"fmt"
	"math/rand"

	applicationdomain "github.com/gridpoint/interconnect/internal/application/domain"
	"github.com/gridpoint/interconnect/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("seed",
	fx.Invoke(Run),
)

var (
	firstNames = []string{"Alex", "Jordan", "Taylor", "Riley", "Casey", "Avery", "Parker", "Drew", "Jamie", "Morgan", "Quinn", "Reese"}
	lastNames  = []string{"Smith", "Johnson", "Lee", "Brown", "Garcia", "Davis", "Miller", "Wilson", "Anderson", "Thomas", "Moore", "Martin"}

	addresses = []string{
		"123 Maple Street", "456 Oak Avenue", "789 Pine Drive", "321 Elm Boulevard",
		"654 Cedar Lane", "987 Birch Road", "147 Spruce Court", "258 Willow Way",
	}

	locations = []struct {
		city  string
		state string
		zip   string
	}{
		{"San Francisco", "CA", "94102"},
		{"Austin", "TX", "73301"},
		{"Denver", "CO", "80202"},
		{"Phoenix", "AZ", "85001"},
		{"Seattle", "WA", "98101"},
		{"Boston", "MA", "02101"},
	}

	panelManufacturers    = []string{"Canadian Solar", "SunPower", "LG Solar", "Tesla Energy", "Jinko Solar", "Q CELLS", "REC Solar", "Panasonic"}
	inverterManufacturers = []string{"Enphase", "SolarEdge", "SMA", "Fronius", "Generac", "APsystems"}
	installerNames        = []string{"SolarGood LLC", "SuperSolar LLC", "BrightEnergy Solutions", "SunPro Installers", "GreenTech Solar", "EcoSolar Systems"}
)

// Run inserts demo applications through the regular create path so the
// seeded rows carry the same defaults and satellites as real ones.
func Run(cfg config.Config, db *gorm.DB, svc applicationdomain.Service, log *zap.Logger) error {
	if !cfg.SeedDemoData {
		return nil
	}

	var count int64
	if err := db.Table("interconnection_application").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		loc := locations[rand.Intn(len(locations))]
		req := applicationdomain.CreateRequest{
			FirstName:            firstNames[rand.Intn(len(firstNames))],
			LastName:             lastNames[rand.Intn(len(lastNames))],
			StreetAddress:        addresses[rand.Intn(len(addresses))],
			City:                 loc.city,
			State:                loc.state,
			ZipCode:              loc.zip,
			SystemSizeKW:         fmt.Sprintf("%.1f", 2+rand.Float64()*38),
			PanelManufacturer:    panelManufacturers[rand.Intn(len(panelManufacturers))],
			InverterManufacturer: inverterManufacturers[rand.Intn(len(inverterManufacturers))],
			InstallerCompany:     installerNames[rand.Intn(len(installerNames))],
		}
		created, err := svc.Create(ctx, req)
		if err != nil {
			return err
		}
		log.Info("seeded demo application", zap.String("application_id", created.ID.String()))
	}
	return nil
}
