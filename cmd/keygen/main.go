// AngelaMos | 2026
// main.go

package main

import (
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"

	"github.com/carterperez-dev/dojo-console/internal/auth"
)

type Params struct {
	PrivateKey string `descr:"Output path for the ES256 private key (PEM)" positional:"true"`
	PublicKey  string `descr:"Output path for the public key (PEM)" positional:"true"`
}

func main() {
	boa.NewCmdT[Params]("keygen").
		WithShort("Generate the ES256 key pair used to sign access tokens").
		WithRunFunc(func(params *Params) {
			if err := auth.GenerateKeyPair(params.PrivateKey, params.PublicKey); err != nil {
				fmt.Fprintf(os.Stderr, "Error generating keys: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Wrote %s and %s\n", params.PrivateKey, params.PublicKey)
		}).
		Run()
}
