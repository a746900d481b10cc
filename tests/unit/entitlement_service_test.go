package unit

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	checkoutmemory "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/adapters/memory"
	checkoutentities "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/entities"
	entitlementservice "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/errors"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/services"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/valueobjects"
	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/ports"
)

func audioPathResolver() ports.PodcastResolver {
	return ports.PodcastResolverFunc(func(_ context.Context, path string) (string, error) {
		if path == "podcasts/episode-1.mp3" {
			return "pod-1", nil
		}
		return "", errors.New("not catalog content")
	})
}

func purchasesWith(seed ...checkoutentities.Purchase) *checkoutmemory.Store {
	return checkoutmemory.NewStore(seed)
}

func completedPurchase(userID, podcastID string) checkoutentities.Purchase {
	completedAt := time.Now().UTC().Add(-time.Hour)
	return checkoutentities.Purchase{
		PurchaseID:      "purchase-" + userID,
		UserID:          userID,
		PodcastID:       podcastID,
		AmountCents:     2900,
		Currency:        "pln",
		PaymentIntentID: "pi_" + userID,
		Status:          checkoutentities.PurchaseStatusCompleted,
		CreatedAt:       completedAt.Add(-time.Minute),
		CompletedAt:     &completedAt,
	}
}

func seedObjects() []entities.ObjectMetadata {
	return []entities.ObjectMetadata{
		{
			Path:        "covers/episode-1.jpg",
			ContentType: "image/jpeg",
			Size:        4,
			ACL: valueobjects.ACL{
				Owner:      "admin-1",
				Visibility: valueobjects.VisibilityPublic,
			},
			CreatedAt: time.Now().Add(-time.Hour),
		},
		{
			Path:        "podcasts/episode-1.mp3",
			ContentType: "audio/mpeg",
			Size:        4,
			ACL: valueobjects.ACL{
				Owner:      "admin-1",
				Visibility: valueobjects.VisibilityPrivate,
			},
			CreatedAt: time.Now().Add(-time.Hour),
		},
	}
}

func TestPublicObjectReadableByAnyone(t *testing.T) {
	module := entitlementservice.NewInMemoryModule(seedObjects(), audioPathResolver(), purchasesWith(), nil)

	stream, err := module.Handler.ServePublicObjectHandler(context.Background(), "covers/episode-1.jpg")
	if err != nil {
		t.Fatalf("public object should be readable: %v", err)
	}
	stream.Content.Close()

	// The entitled download path serves public objects for anonymous callers
	// too.
	stream, err = module.Handler.DownloadObjectHandler(context.Background(), nil, "covers/episode-1.jpg")
	if err != nil {
		t.Fatalf("anonymous download of public object: %v", err)
	}
	stream.Content.Close()
}

func TestPublicEndpointHidesPrivateObjects(t *testing.T) {
	module := entitlementservice.NewInMemoryModule(seedObjects(), audioPathResolver(), purchasesWith(), nil)

	_, err := module.Handler.ServePublicObjectHandler(context.Background(), "podcasts/episode-1.mp3")
	if !errors.Is(err, domainerrors.ErrObjectNotFound) {
		t.Fatalf("private objects must look nonexistent on the public endpoint, got %v", err)
	}
}

func TestPrivateObjectAccessDecisions(t *testing.T) {
	module := entitlementservice.NewInMemoryModule(
		seedObjects(),
		audioPathResolver(),
		purchasesWith(completedPurchase("buyer-1", "pod-1")),
		nil,
	)

	// Anonymous: authentication is the missing piece.
	_, err := module.Handler.DownloadObjectHandler(context.Background(), nil, "podcasts/episode-1.mp3")
	if !errors.Is(err, domainerrors.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}

	// Authenticated without a purchase: authorization is the missing piece.
	_, err = module.Handler.DownloadObjectHandler(context.Background(), &services.Principal{UserID: "stranger"}, "podcasts/episode-1.mp3")
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized, got %v", err)
	}

	// A completed purchase grants read access.
	stream, err := module.Handler.DownloadObjectHandler(context.Background(), &services.Principal{UserID: "buyer-1"}, "podcasts/episode-1.mp3")
	if err != nil {
		t.Fatalf("purchaser should read the episode: %v", err)
	}
	stream.Content.Close()

	// Owner and admin read without any purchase.
	stream, err = module.Handler.DownloadObjectHandler(context.Background(), &services.Principal{UserID: "admin-1"}, "podcasts/episode-1.mp3")
	if err != nil {
		t.Fatalf("owner read: %v", err)
	}
	stream.Content.Close()
	stream, err = module.Handler.DownloadObjectHandler(context.Background(), &services.Principal{UserID: "ops", Admin: true}, "podcasts/episode-1.mp3")
	if err != nil {
		t.Fatalf("admin read: %v", err)
	}
	stream.Content.Close()
}

func TestCheckObjectAccessDoesNotStreamContent(t *testing.T) {
	module := entitlementservice.NewInMemoryModule(
		seedObjects(),
		audioPathResolver(),
		purchasesWith(completedPurchase("buyer-1", "pod-1")),
		nil,
	)

	if err := module.Handler.CheckObjectAccessHandler(context.Background(), &services.Principal{UserID: "buyer-1"}, "podcasts/episode-1.mp3"); err != nil {
		t.Fatalf("purchaser access check: %v", err)
	}
	err := module.Handler.CheckObjectAccessHandler(context.Background(), &services.Principal{UserID: "stranger"}, "podcasts/episode-1.mp3")
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized, got %v", err)
	}

	// An access check is not a download.
	if got := len(module.Store.Downloads()); got != 0 {
		t.Fatalf("access checks must not be audited as downloads, got %d", got)
	}
}

func TestMissingAndTraversalPathsAreNotFound(t *testing.T) {
	module := entitlementservice.NewInMemoryModule(seedObjects(), audioPathResolver(), purchasesWith(), nil)

	_, err := module.Handler.DownloadObjectHandler(context.Background(), &services.Principal{UserID: "ops", Admin: true}, "podcasts/missing.mp3")
	if !errors.Is(err, domainerrors.ErrObjectNotFound) {
		t.Fatalf("expected object not found, got %v", err)
	}

	_, err = module.Handler.DownloadObjectHandler(context.Background(), &services.Principal{UserID: "ops", Admin: true}, "../etc/passwd")
	if !errors.Is(err, domainerrors.ErrObjectNotFound) {
		t.Fatalf("traversal paths must be indistinguishable from missing objects, got %v", err)
	}
}

func TestDownloadIsAudited(t *testing.T) {
	module := entitlementservice.NewInMemoryModule(
		seedObjects(),
		audioPathResolver(),
		purchasesWith(completedPurchase("buyer-1", "pod-1")),
		nil,
	)

	stream, err := module.Handler.DownloadObjectHandler(context.Background(), &services.Principal{UserID: "buyer-1"}, "podcasts/episode-1.mp3")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	stream.Content.Close()

	downloads := module.Store.Downloads()
	if len(downloads) != 1 {
		t.Fatalf("expected one audit record, got %d", len(downloads))
	}
	if downloads[0].UserID != "buyer-1" || downloads[0].Path != "podcasts/episode-1.mp3" {
		t.Fatalf("audit record mismatch: %+v", downloads[0])
	}
}

func TestUploadRequiresAdmin(t *testing.T) {
	module := entitlementservice.NewInMemoryModule(nil, audioPathResolver(), purchasesWith(), nil)

	err := module.Handler.UploadObjectHandler(context.Background(), nil, "covers/new.jpg", "image/jpeg", "public", 4, strings.NewReader("data"))
	if !errors.Is(err, domainerrors.ErrNotAuthenticated) {
		t.Fatalf("anonymous upload should need auth, got %v", err)
	}

	err = module.Handler.UploadObjectHandler(context.Background(), &services.Principal{UserID: "member"}, "covers/new.jpg", "image/jpeg", "public", 4, strings.NewReader("data"))
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("non-admin upload should be forbidden, got %v", err)
	}

	err = module.Handler.UploadObjectHandler(context.Background(), &services.Principal{UserID: "ops", Admin: true}, "covers/new.jpg", "image/jpeg", "public", 4, strings.NewReader("data"))
	if err != nil {
		t.Fatalf("admin upload: %v", err)
	}

	stream, err := module.Handler.ServePublicObjectHandler(context.Background(), "covers/new.jpg")
	if err != nil {
		t.Fatalf("uploaded public object should be served: %v", err)
	}
	defer stream.Content.Close()
	content, err := io.ReadAll(stream.Content)
	if err != nil {
		t.Fatalf("read uploaded content: %v", err)
	}
	if string(content) != "data" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestUploadDefaultsToPrivate(t *testing.T) {
	module := entitlementservice.NewInMemoryModule(nil, audioPathResolver(), purchasesWith(), nil)

	err := module.Handler.UploadObjectHandler(context.Background(), &services.Principal{UserID: "ops", Admin: true}, "podcasts/new.mp3", "", "", 4, strings.NewReader("data"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	_, err = module.Handler.ServePublicObjectHandler(context.Background(), "podcasts/new.mp3")
	if !errors.Is(err, domainerrors.ErrObjectNotFound) {
		t.Fatalf("default visibility must be private, got %v", err)
	}

	// The uploader still reads their own object.
	stream, err := module.Handler.DownloadObjectHandler(context.Background(), &services.Principal{UserID: "ops", Admin: true}, "podcasts/new.mp3")
	if err != nil {
		t.Fatalf("uploader read: %v", err)
	}
	stream.Content.Close()
	if stream.ContentType != "application/octet-stream" {
		t.Fatalf("missing content type should default, got %q", stream.ContentType)
	}
}
