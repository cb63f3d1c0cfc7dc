package service

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"gocloud.dev/gcerrors"
	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"

	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSSchemes lists the KMS_KEY_URI schemes with a registered keeper driver.
// base64key is localsecrets and is meant for development only.
var KMSSchemes = []string{"base64key", "hashivault", "awskms", "gcpkms", "azurekeyvault"}

type kmsService struct {
	opener func(ctx context.Context, uri string) (*secrets.Keeper, error)
}

// NewKMSService returns a KMSService backed by gocloud.dev/secrets.
func NewKMSService() KMSService {
	return &kmsService{opener: secrets.OpenKeeper}
}

// OpenKeeper opens the keeper named by keyURI. Driver errors for base64key URIs are
// reduced to their gcerrors code since the URI embeds the key itself.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	u, err := url.Parse(keyURI)
	if err != nil || u.Scheme == "" {
		return nil, fmt.Errorf("failed to open KMS keeper: key URI has no scheme")
	}
	if !slices.Contains(KMSSchemes, u.Scheme) {
		return nil, fmt.Errorf("failed to open KMS keeper: unsupported scheme %q", u.Scheme)
	}

	keeper, err := k.opener(ctx, keyURI)
	if err != nil {
		if u.Scheme == "base64key" {
			return nil, fmt.Errorf("failed to open KMS keeper for scheme %q: %s", u.Scheme, gcerrors.Code(err))
		}
		return nil, fmt.Errorf("failed to open KMS keeper for scheme %q: %w", u.Scheme, err)
	}
	return keeper, nil
}
