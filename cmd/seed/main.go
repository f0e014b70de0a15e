// Seed tool for the storefront database: creates or resets the admin account
// and loads an initial product catalog from a JSON file.
//
//	go run ./cmd/seed -admin ops@example.com:s3cret -products products.json
//	go run ./cmd/seed -destroy
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/models"
)

func main() {
	adminFlag := flag.String("admin", "", "admin credentials as email:password")
	productsFlag := flag.String("products", "", "path to a JSON file of products")
	destroyFlag := flag.Bool("destroy", false, "drop admins and products")
	flag.Parse()

	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	db := client.Database(config.AppEnv.DBName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *destroyFlag {
		if err := db.Collection("admins").Drop(ctx); err != nil {
			log.Fatal(err)
		}
		if err := db.Collection("products").Drop(ctx); err != nil {
			log.Fatal(err)
		}
		log.Println("admins and products dropped")
		return
	}

	if *adminFlag != "" {
		email, password, ok := strings.Cut(*adminFlag, ":")
		if !ok || email == "" || password == "" {
			log.Fatal("-admin expects email:password")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}

		_, err = db.Collection("admins").UpdateOne(ctx,
			bson.M{"email": strings.ToLower(strings.TrimSpace(email))},
			bson.M{"$set": bson.M{"password": string(hash)}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("admin seeded:", email)
	}

	if *productsFlag != "" {
		data, err := os.ReadFile(*productsFlag)
		if err != nil {
			log.Fatal(err)
		}

		var products []models.Product
		if err := json.Unmarshal(data, &products); err != nil {
			log.Fatal(err)
		}

		if err := db.Collection("products").Drop(ctx); err != nil {
			log.Fatal(err)
		}

		now := time.Now()
		docs := make([]interface{}, 0, len(products))
		for _, p := range products {
			p.CreatedAt = now
			p.UpdatedAt = now
			docs = append(docs, p)
		}

		if len(docs) > 0 {
			if _, err := db.Collection("products").InsertMany(ctx, docs); err != nil {
				log.Fatal(err)
			}
		}
		log.Printf("%d products seeded", len(docs))
	}
}
