package eth

import (
	"errors"
	"math/big"

	"github.com/decentraland/thirdparty-registry/src/utils/config"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"
	"github.com/sirupsen/logrus"
)

var ErrRpcUrlEmpty = errors.New("eth rpc url is empty")

func GetEthClient(log *logrus.Entry, config *config.Eth) (client *ethclient.Client, err error) {
	if config.RpcUrl == "" {
		err = ErrRpcUrlEmpty
		log.WithError(err).Error("ETH rpc url unknown")
		return
	}

	client, err = ethclient.Dial(config.RpcUrl)
	if err != nil {
		log.WithError(err).Error("Cannot get ETH client")
		return
	}

	return
}

func WeiToEther(wei *big.Int) float64 {
	ether, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.Ether)).Float64()
	return ether
}
