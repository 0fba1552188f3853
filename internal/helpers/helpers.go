package helpers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/diegoizac/christianitatis-sub000/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

const EventsFolder = "events"

type CustomClaims struct {
	Role        string `json:"role"`
	Email       string `json:"email"`
	AppMetadata struct {
		Provider  string   `json:"provider"`
		Providers []string `json:"providers"`
	} `json:"app_metadata"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// ValidateToken checks a Supabase session JWT against the project's JWKS.
func ValidateToken(tokenStr string) (*CustomClaims, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	if supabaseURL == "" {
		return nil, errors.New("SUPABASE_URL not set")
	}

	jwksURL := fmt.Sprintf("%s/rest/v1/auth/jwks", supabaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx: ctx,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}

var (
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasNumber  = regexp.MustCompile(`\d`)
	hasSpecial = regexp.MustCompile(`[@$!%*?&]`)
)

func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	return hasLower.MatchString(password) &&
		hasUpper.MatchString(password) &&
		hasNumber.MatchString(password) &&
		hasSpecial.MatchString(password)
}

// UploadMedia pushes one asset to Cloudinary and returns the stored
// reference. resourceType is "image" or "video".
func UploadMedia(ctx context.Context, cld *cloudinary.Cloudinary, source, resourceType string) (*models.Media, error) {
	if cld == nil {
		return nil, errors.New("media storage is not configured")
	}

	uploadResult, err := cld.Upload.Upload(ctx, source, uploader.UploadParams{
		Folder:       EventsFolder,
		ResourceType: resourceType,
		Tags:         []string{"christianitatis"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", resourceType, err)
	}

	name := uploadResult.OriginalFilename
	if name == "" {
		name = uploadResult.PublicID
	}

	return &models.Media{
		URL:    uploadResult.SecureURL,
		Size:   uploadResult.Bytes,
		Format: uploadResult.Format,
		Name:   name,
	}, nil
}
