package gsheets

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/context"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/uhppoted-lib/log"
)

const (
	SHEETS = sheets.SpreadsheetsScope
	DRIVE  = drive.DriveMetadataReadonlyScope
)

// Authorize returns an HTTP client authorised for the scope, using the OAuth2 client credentials
// file and a tokens file in the working directory. If there is no tokens file the user is asked
// to authorise access on the console and the resulting token is saved for subsequent runs.
func Authorize(credentials, scope, workdir string) (*http.Client, error) {
	config, err := oauthConfig(credentials, scope)
	if err != nil {
		return nil, err
	}

	tokens := TokensFile(credentials, scope, workdir)

	token, err := tokenFromFile(tokens)
	if err != nil {
		if token, err = tokenFromWeb(config, os.Stdin, os.Stdout); err != nil {
			return nil, err
		} else if err := saveToken(tokens, token); err != nil {
			return nil, err
		}
	}

	return config.Client(context.Background(), token), nil
}

// Authorise runs the console authorisation flow unconditionally, replacing any existing tokens.
func Authorise(credentials, scope, workdir string, in io.Reader, out io.Writer) error {
	config, err := oauthConfig(credentials, scope)
	if err != nil {
		return err
	}

	token, err := tokenFromWeb(config, in, out)
	if err != nil {
		return err
	}

	return saveToken(TokensFile(credentials, scope, workdir), token)
}

// TokensFile returns the path of the tokens file for the credentials and scope, e.g.
// <workdir>/credentials.sheets
func TokensFile(credentials, scope, workdir string) string {
	_, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	switch {
	case strings.HasPrefix(scope, SHEETS):
		return filepath.Join(workdir, fmt.Sprintf("%s.sheets", name))

	case strings.HasPrefix(scope, DRIVE):
		return filepath.Join(workdir, fmt.Sprintf("%s.drive", name))

	default:
		return filepath.Join(workdir, fmt.Sprintf("%s.tokens", name))
	}
}

func oauthConfig(credentials, scope string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	return google.ConfigFromJSON(b, scope)
}

// Request a token from the web, then returns the retrieved token.
func tokenFromWeb(config *oauth2.Config, in io.Reader, out io.Writer) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	fmt.Fprintf(out, "Go to the following link in your browser then type the authorization code: \n%v\n", authURL)

	var code string
	if _, err := fmt.Fscan(in, &code); err != nil {
		return nil, fmt.Errorf("unable to read authorization code (%w)", err)
	}

	token, err := config.Exchange(context.TODO(), code)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web (%w)", err)
	}

	return token, nil
}

// Retrieves a token from a local file.
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

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	log.Infof("Saving credential file to: %s", path)

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token (%w)", err)
	}

	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
