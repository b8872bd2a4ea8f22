// Package seeders registers fixture data for the seed command and for boots
// against the memory driver. Blank-import it from main to make the seeders
// available.
package seeders

import (
	"context"
	"fmt"

	"github.com/hasan75/tourism-htt-server/app/models"
	"github.com/hasan75/tourism-htt-server/pkg/app"
	"github.com/hasan75/tourism-htt-server/pkg/docstore"
)

func init() {
	app.RegisterSeeder("tour catalog", SeedCatalog)
	app.RegisterSeeder("travel blogs", SeedBlogs)
}

// Catalog is the demo tour catalog.
var Catalog = []models.Document{
	{"name": "Sajek Valley", "description": "Two nights above the clouds in the Chittagong Hill Tracts.", "price": 120.0, "duration": "3 days", "img": "https://i.ibb.co/sajek.jpg"},
	{"name": "Sundarbans Safari", "description": "Boat cruise through the mangrove forest.", "price": 210.0, "duration": "4 days", "img": "https://i.ibb.co/sundarbans.jpg"},
	{"name": "Saint Martin's Island", "description": "Coral island stay with snorkelling.", "price": 150.0, "duration": "3 days", "img": "https://i.ibb.co/saintmartin.jpg"},
	{"name": "Ratargul Swamp Forest", "description": "Day trip by canoe through the freshwater swamp.", "price": 45.0, "duration": "1 day", "img": "https://i.ibb.co/ratargul.jpg"},
	{"name": "Bandarban Trek", "description": "Trek to Nafakhum falls and Keokradong.", "price": 180.0, "duration": "5 days", "img": "https://i.ibb.co/bandarban.jpg"},
	{"name": "Srimangal Tea Trail", "description": "Tea gardens and Lawachara national park.", "price": 75.0, "duration": "2 days", "img": "https://i.ibb.co/srimangal.jpg"},
}

// Blogs are the demo travel stories.
var Blogs = []models.Document{
	{"title": "Packing for the monsoon", "author": "Hit the Trail", "body": "Waterproof everything twice."},
	{"title": "Five sunrise spots in Bandarban", "author": "Hit the Trail", "body": "Nilgiri comes first."},
}

// SeedCatalog inserts the demo catalog unless products already exist.
func SeedCatalog(ctx context.Context, store docstore.Store) error {
	return seedOnce(ctx, store, models.Products, Catalog)
}

func SeedBlogs(ctx context.Context, store docstore.Store) error {
	return seedOnce(ctx, store, models.Blogs, Blogs)
}

func seedOnce(ctx context.Context, store docstore.Store, collection string, docs []models.Document) error {
	n, err := store.Count(ctx, collection, models.Document{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, doc := range docs {
		if _, err := store.InsertOne(ctx, collection, doc); err != nil {
			return fmt.Errorf("insert %s: %w", collection, err)
		}
	}
	return nil
}
