package models

import (
	"github.com/go-playground/validator/v10"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

// SupabaseRepo issues every relational query the API makes. Row-level
// security on the Supabase side is driven by the caller's access token, so
// mutating methods take one and run on a per-request authenticated client.
type SupabaseRepo struct {
	supabaseClient *supabase.Client
	url            string
	key            string
}

func SupabaseNewRepo(supabaseClient *supabase.Client, url, key string) *SupabaseRepo {
	return &SupabaseRepo{
		supabaseClient: supabaseClient,
		url:            url,
		key:            key,
	}
}

// GetAuthenticatedClient returns a Supabase client acting as the holder of
// the given access token. With an empty token the anon client is returned,
// which RLS restricts to published rows.
func (su *SupabaseRepo) GetAuthenticatedClient(accessToken string) (*supabase.Client, error) {
	if accessToken == "" || su.url == "" || su.key == "" {
		return su.supabaseClient, nil
	}

	options := &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + accessToken,
		},
	}

	return supabase.NewClient(su.url, su.key, options)
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
}

func MongodbNewRepo(mongodbClient *mongo.Client) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
	}
}
