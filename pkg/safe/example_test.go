package safe_test

import (
	"fmt"
	"log"

	"github.com/m3o/safe/pkg/safe"
	"github.com/m3o/safe/pkg/secrets"
)

func Example() {
	s, err := safe.New(secrets.NewInMemorySecretStore(), safe.Config{Secret: "app-secret"})
	if err != nil {
		log.Fatal(err)
	}

	if err := s.StoreUserID("user-42"); err != nil {
		log.Fatal(err)
	}
	userID, err := s.UserID()
	if err != nil {
		log.Fatal(err)
	}
	apiKey, err := s.APIKey()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("user id: %s\n", userID)
	fmt.Printf("api key set: %v\n", apiKey != "")
	// Output:
	// user id: user-42
	// api key set: false
}
