package llm

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// NewCredential returns the token credential for an AAD auth mode.
// AuthAAD tries the Azure CLI login first, then a managed identity.
func NewCredential(auth string) (azcore.TokenCredential, error) {
	cli, err := azidentity.NewAzureCLICredential(nil)
	if err != nil {
		return nil, fmt.Errorf("creating Azure CLI credential: %w", err)
	}

	if auth == AuthAzureCLI {
		return cli, nil
	}

	mi, err := azidentity.NewManagedIdentityCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("creating managed identity credential: %w", err)
	}

	return azidentity.NewChainedTokenCredential([]azcore.TokenCredential{cli, mi}, nil)
}
