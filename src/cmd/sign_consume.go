package cmd

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/decentraland/thirdparty-registry/src/registry"
	"github.com/decentraland/thirdparty-registry/src/utils/eth"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var (
	signKey          string
	signThirdPartyId string
	signQty          uint64
	signSalt         string
)

func init() {
	signConsumeCmd.Flags().StringVar(&signKey, "key", "", "hex encoded private key of a third party manager")
	signConsumeCmd.Flags().StringVar(&signThirdPartyId, "third-party", "", "third party id")
	signConsumeCmd.Flags().Uint64Var(&signQty, "qty", 0, "number of slots")
	signConsumeCmd.Flags().StringVar(&signSalt, "salt", "", "hex encoded 32 byte salt, random if empty")
	_ = signConsumeCmd.MarkFlagRequired("key")
	_ = signConsumeCmd.MarkFlagRequired("third-party")
	_ = signConsumeCmd.MarkFlagRequired("qty")

	RootCmd.AddCommand(signConsumeCmd)
}

var signConsumeCmd = &cobra.Command{
	Use:   "sign-consume",
	Short: "Signs an authorization for consuming item slots and prints it as JSON",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		key, err := eth.ParsePrivateKey(signKey)
		if err != nil {
			return
		}

		var salt common.Hash
		if signSalt == "" {
			_, err = rand.Read(salt[:])
			if err != nil {
				return
			}
		} else {
			salt = common.HexToHash(signSalt)
		}

		domain, err := eth.NewDomain(&conf.Registry.Domain)
		if err != nil {
			return
		}

		digest, err := eth.ConsumeSlotsHash(domain, signThirdPartyId, signQty, salt)
		if err != nil {
			return
		}

		signature, err := eth.Sign(digest, key)
		if err != nil {
			return
		}

		out, err := json.MarshalIndent(&registry.ConsumeSlotsParam{
			Qty:       signQty,
			Salt:      salt,
			Signature: signature,
		}, "", "  ")
		if err != nil {
			return
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return
	},
}
