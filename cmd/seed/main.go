package main

import (
	"fmt"
	"time"

	"etn-patron/pkg/config"
	"etn-patron/pkg/database"
	"etn-patron/pkg/logger"
	"etn-patron/pkg/models"

	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	testUsers := []struct {
		wallet   string
		username string
		creator  bool
		subPrice string
	}{
		{"0xa11ce00000000000000000000000000000000001", "alice_etn", true, "5000000000000000000"},
		{"0xb0b0000000000000000000000000000000000002", "bob_etn", true, "2000000000000000000"},
		{"0xca7110000000000000000000000000000000aa03", "charlie_etn", false, ""},
		{"0xd1a7a0000000000000000000000000000000bb04", "diana_etn", false, ""},
	}

	creatorIDs := make([]string, 0)

	for _, userData := range testUsers {
		var existing models.User
		result := db.Where("wallet_address = ?", userData.wallet).First(&existing)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", userData.username)
			continue
		}

		user := &models.User{
			WalletAddress: userData.wallet,
			Username:      userData.username,
			DisplayName:   userData.username,
		}
		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", userData.username, err)
			continue
		}
		log.Info("Created user: %s (%s)", user.Username, user.WalletAddress)

		if !userData.creator {
			continue
		}

		profile := &models.CreatorProfile{
			UserID:      user.ID,
			SubPrice:    userData.subPrice,
			Category:    "music",
			Description: fmt.Sprintf("Test creator %s", userData.username),
		}
		if err := db.Create(profile).Error; err != nil {
			log.Error("Failed to create creator profile for %s: %v", userData.username, err)
			continue
		}
		if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_creator", true).Error; err != nil {
			log.Error("Failed to flag %s as creator: %v", userData.username, err)
		}
		creatorIDs = append(creatorIDs, profile.ID)

		for i := 0; i < 3; i++ {
			content := &models.Content{
				CreatorID:   profile.ID,
				Title:       fmt.Sprintf("%s drop #%d", userData.username, i+1),
				Description: "Seeded test content",
				Category:    "music",
				IsPremium:   i == 2,
				AccessPrice: "0",
			}
			if content.IsPremium {
				content.AccessPrice = "1000000000000000000"
				content.ContentHash = fmt.Sprintf("QmSeed%s%d", userData.username, i)
			} else {
				content.ContentURL = fmt.Sprintf("https://cdn.example.com/%s/%d.mp4", userData.username, i)
			}
			if err := db.Create(content).Error; err != nil {
				log.Error("Failed to create content for %s: %v", userData.username, err)
			}
		}
		log.Info("Created 3 content items for %s", userData.username)
	}

	// Give the first non-creator an active subscription to the first creator.
	if len(creatorIDs) > 0 {
		var viewer models.User
		if err := db.Where("is_creator = ?", false).First(&viewer).Error; err == nil {
			var existingSub models.Subscription
			result := db.Where("user_id = ? AND creator_id = ?", viewer.ID, creatorIDs[0]).First(&existingSub)
			if result.Error == gorm.ErrRecordNotFound {
				sub := &models.Subscription{
					UserID:    viewer.ID,
					CreatorID: creatorIDs[0],
					IsActive:  true,
					PricePaid: "5000000000000000000",
					StartDate: time.Now(),
					EndDate:   time.Now().Add(30 * 24 * time.Hour),
				}
				if err := db.Create(sub).Error; err != nil {
					log.Error("Failed to create subscription: %v", err)
				} else {
					log.Info("Created subscription %s -> %s", viewer.Username, creatorIDs[0])
				}
			}
		}
	}

	return nil
}
