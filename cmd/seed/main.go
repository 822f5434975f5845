// Command seed creates the default subscription plan and the starter credit
// packages. Safe to run repeatedly: existing entries are left untouched.
package main

import (
	"context"
	"log"

	"servio/internal/config"
	"servio/internal/models"
	"servio/internal/repositories"
	"servio/internal/services/catalog"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatal("failed to initialize database: ", err)
	}
	defer repositories.CloseDB()

	ctx := context.Background()
	plans := catalog.NewPlanService(repositories.NewPlanRepository(repositories.DB))
	packages := catalog.NewPackageService(repositories.NewCreditPackageRepository(repositories.DB))

	defaultPlan := &models.SubscriptionPlan{
		Name:          "Starter",
		Description:   "Default plan for new service providers",
		Price:         0,
		DurationDays:  30,
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 0,
		CreditsPerJob: 1,
		Benefits:      models.StringList{"Marketplace listing", "Standard support"},
		IsDefault:     true,
	}
	plan, err := plans.CreatePlan(ctx, defaultPlan)
	switch err {
	case nil:
		if _, err := plans.PublishPlan(ctx, plan.ID); err != nil {
			log.Fatal("failed to publish default plan: ", err)
		}
		log.Printf("created default plan %q", plan.Name)
	case catalog.ErrDuplicateName:
		log.Printf("default plan already exists")
	default:
		log.Fatal("failed to create default plan: ", err)
	}

	starterPackages := []*models.CreditPackage{
		{Name: "Credit 10", Amount: 9.99, TotalCredit: 10, VAT: 0.2, Status: models.CatalogStatusActive},
		{Name: "Credit 50", Amount: 44.99, TotalCredit: 50, VAT: 0.2, Status: models.CatalogStatusActive},
		{Name: "Credit 100", Amount: 79.99, TotalCredit: 100, VAT: 0.2, Status: models.CatalogStatusActive},
	}
	for _, pkg := range starterPackages {
		switch _, err := packages.CreatePackage(ctx, pkg); err {
		case nil:
			log.Printf("created credit package %q", pkg.Name)
		case catalog.ErrDuplicateName:
			log.Printf("credit package %q already exists", pkg.Name)
		default:
			log.Fatal("failed to create credit package: ", err)
		}
	}

	log.Println("seed completed")
}
