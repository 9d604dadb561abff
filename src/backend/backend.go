package backend

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/decentraland/thirdparty-registry/src/committee"
	"github.com/decentraland/thirdparty-registry/src/oracle"
	"github.com/decentraland/thirdparty-registry/src/token"
	"github.com/decentraland/thirdparty-registry/src/utils/config"
	"github.com/decentraland/thirdparty-registry/src/utils/eth"
	"github.com/decentraland/thirdparty-registry/src/utils/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoEthClient   = errors.New("eth client is not configured")
	ErrUnknownKind   = errors.New("unknown kind")
	ErrNoTransactor  = errors.New("transactor key is not configured")
	ErrInvalidConfig = errors.New("invalid backend config")
)

// Resolves the external contracts the registry settings point at.
// Instances are created once per address and reused.
type Backend struct {
	log    *logrus.Entry
	config *config.Config
	client *ethclient.Client

	mtx        sync.Mutex
	oracles    map[common.Address]oracle.Oracle
	committees map[common.Address]committee.Committee
	tokens     map[common.Address]token.Token
}

func NewBackend(config *config.Config) (self *Backend) {
	self = new(Backend)
	self.log = logger.NewSublogger("backend")
	self.config = config
	self.oracles = make(map[common.Address]oracle.Oracle)
	self.committees = make(map[common.Address]committee.Committee)
	self.tokens = make(map[common.Address]token.Token)
	return
}

func (self *Backend) WithEthClient(client *ethclient.Client) *Backend {
	self.client = client
	return self
}

// Registers an instance used for the address instead of the configured kind
func (self *Backend) WithOracle(address common.Address, v oracle.Oracle) *Backend {
	self.oracles[address] = v
	return self
}

func (self *Backend) WithCommittee(address common.Address, v committee.Committee) *Backend {
	self.committees[address] = v
	return self
}

func (self *Backend) WithToken(address common.Address, v token.Token) *Backend {
	self.tokens[address] = v
	return self
}

func (self *Backend) Oracle(address common.Address) (out oracle.Oracle, err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	out, ok := self.oracles[address]
	if ok {
		return
	}

	cfg := self.config.Oracle
	switch cfg.Kind {
	case config.OracleKindChainlink:
		if self.client == nil {
			return nil, ErrNoEthClient
		}
		var feed *oracle.ChainlinkFeed
		feed, err = oracle.NewChainlinkFeed(self.client, address)
		if err != nil {
			return
		}
		out, err = self.chainlinkOracle(feed)
		if err != nil {
			return
		}
	case config.OracleKindHttp:
		if cfg.HttpUrl == "" {
			return nil, fmt.Errorf("%w: empty oracle url", ErrInvalidConfig)
		}
		out, err = self.chainlinkOracle(oracle.NewHttpFeed(cfg.HttpUrl, cfg.HttpTimeout))
		if err != nil {
			return
		}
	case config.OracleKindFixed:
		rate, ok := new(big.Int).SetString(cfg.FixedRate, 10)
		if !ok {
			return nil, fmt.Errorf("%w: fixed rate %q", ErrInvalidConfig, cfg.FixedRate)
		}
		out, err = oracle.NewFixedOracle(rate)
		if err != nil {
			return
		}
	default:
		return nil, fmt.Errorf("%w: oracle %q", ErrUnknownKind, cfg.Kind)
	}

	self.log.WithField("address", address.Hex()).WithField("kind", cfg.Kind).Info("Oracle resolved")
	self.oracles[address] = out
	return
}

func (self *Backend) chainlinkOracle(feed oracle.Feed) (oracle.Oracle, error) {
	cfg := self.config.Oracle
	switch {
	case cfg.Decimals > 2*oracle.RateDecimals:
		return nil, fmt.Errorf("%w: oracle decimals %d", ErrInvalidConfig, cfg.Decimals)
	case cfg.Decimals < 0:
		return oracle.NewChainlinkOracle(feed, cfg.StaleTolerance), nil
	default:
		return oracle.NewChainlinkOracle(feed, cfg.StaleTolerance).WithDecimals(uint8(cfg.Decimals)), nil
	}
}

func (self *Backend) Committee(address common.Address) (out committee.Committee, err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	out, ok := self.committees[address]
	if ok {
		return
	}

	switch self.config.Committee.Kind {
	case config.CommitteeKindStatic:
		out, err = committee.NewStaticFromHex(self.config.Committee.Members)
	case config.CommitteeKindContract:
		if self.client == nil {
			return nil, ErrNoEthClient
		}
		out, err = committee.NewContract(self.client, address)
	default:
		err = fmt.Errorf("%w: committee %q", ErrUnknownKind, self.config.Committee.Kind)
	}
	if err != nil {
		return nil, err
	}

	self.log.WithField("address", address.Hex()).WithField("kind", self.config.Committee.Kind).Info("Committee resolved")
	self.committees[address] = out
	return
}

func (self *Backend) Token(address common.Address) (out token.Token, err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	out, ok := self.tokens[address]
	if ok {
		return
	}

	switch self.config.Token.Kind {
	case config.TokenKindMemory:
		out = token.NewMemory()
	case config.TokenKindErc20:
		if self.client == nil {
			return nil, ErrNoEthClient
		}
		if self.config.Eth.TransactorKey == "" {
			return nil, ErrNoTransactor
		}
		key, err := eth.ParsePrivateKey(self.config.Eth.TransactorKey)
		if err != nil {
			return nil, err
		}
		erc20, err := token.NewERC20(self.client, address, key, big.NewInt(self.config.Eth.ChainId))
		if err != nil {
			return nil, err
		}
		out = erc20.WithReceiptTimeout(self.config.Eth.ReceiptTimeout)
	default:
		return nil, fmt.Errorf("%w: token %q", ErrUnknownKind, self.config.Token.Kind)
	}

	self.log.WithField("address", address.Hex()).WithField("kind", self.config.Token.Kind).Info("Token resolved")
	self.tokens[address] = out
	return
}
