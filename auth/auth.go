package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var ErrNotAuthorised = errors.New("no cached OAuth2 token - run 'authorise' first")

// CredentialSource supplies the OAuth2 token used to access the spreadsheet.
type CredentialSource interface {
	FetchCredential(ctx context.Context) (*oauth2.Token, error)
}

// Prompt displays the authorisation URL and returns the authorisation code
// entered by the user.
type Prompt func(url string) (string, error)

// Authoriser implements the OAuth2 'installed application' flow with a file
// backed token cache.
type Authoriser struct {
	config *oauth2.Config
	tokens string
	prompt Prompt
}

func NewAuthoriser(config *oauth2.Config, tokens string, prompt Prompt) *Authoriser {
	return &Authoriser{
		config: config,
		tokens: tokens,
		prompt: prompt,
	}
}

// FromCredentialsFile builds an Authoriser from a Google 'credentials.json'
// file. The tokens are cached in the workdir as <credentials>.sheets.
func FromCredentialsFile(credentials, scope, workdir string, prompt Prompt) (*Authoriser, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	config, err := google.ConfigFromJSON(b, scope)
	if err != nil {
		return nil, err
	}

	return NewAuthoriser(config, TokensFile(credentials, workdir), prompt), nil
}

// TokensFile returns the token cache path for a credentials file.
func TokensFile(credentials, workdir string) string {
	_, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	return filepath.Join(workdir, fmt.Sprintf("%s.sheets", name))
}

func (a *Authoriser) Config() *oauth2.Config {
	return a.config
}

// FetchCredential returns the cached token. Without a cached token it falls
// back to the interactive flow if a prompt has been configured.
func (a *Authoriser) FetchCredential(ctx context.Context) (*oauth2.Token, error) {
	token, err := tokenFromFile(a.tokens)
	if err == nil {
		return token, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("invalid token file %v (%w)", a.tokens, err)
	}

	if a.prompt == nil {
		return nil, ErrNotAuthorised
	}

	return a.Authorise(ctx)
}

// Authorise runs the interactive flow unconditionally and replaces the cached
// token.
func (a *Authoriser) Authorise(ctx context.Context) (*oauth2.Token, error) {
	if a.prompt == nil {
		return nil, fmt.Errorf("interactive authorisation not available")
	}

	url := a.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	code, err := a.prompt(url)
	if err != nil {
		return nil, fmt.Errorf("unable to read authorisation code (%w)", err)
	} else if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("missing authorisation code")
	}

	token, err := a.config.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web (%w)", err)
	}

	if err := saveToken(a.tokens, token); err != nil {
		return nil, fmt.Errorf("unable to cache OAuth2 token (%w)", err)
	}

	return token, nil
}

// Client returns an HTTP client authorised with the token from the credential
// source. Expired access tokens are refreshed by the client.
func Client(ctx context.Context, config *oauth2.Config, source CredentialSource) (*http.Client, error) {
	token, err := source.FetchCredential(ctx)
	if err != nil {
		return nil, err
	}

	return config.Client(ctx, token), nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	token := oauth2.Token{}
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, err
	}

	return &token, nil
}

func saveToken(file string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
