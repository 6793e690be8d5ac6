package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/tcfw/didanchor/pkg/did/w3cdid"
)

type DID struct {
	Network string
	Method  w3cdid.LedgerMethod
	Topic   *w3cdid.TopicID
}

const (
	Cfg_did_network = "did.network"
	Cfg_did_method  = "did.method"
	Cfg_did_topic   = "did.topic"
)

var (
	didDefaults = map[string]interface{}{
		Cfg_did_network: "testnet",
		Cfg_did_method:  w3cdid.DefaultLedgerMethod,
		Cfg_did_topic:   "",
	}
)

func init() {
	for k, v := range didDefaults {
		viper.SetDefault(k, v)
	}
}

func buildDIDConfig() (*DID, error) {
	c := &DID{
		Network: viper.GetString(Cfg_did_network),
		Method:  w3cdid.NewLedgerMethod(viper.GetString(Cfg_did_method)),
	}

	if c.Network == "" {
		return nil, errors.New("network must be set")
	}

	if c.Method.Name() == "" {
		return nil, errors.New("method must be set")
	}

	if t := viper.GetString(Cfg_did_topic); t != "" {
		topic, err := w3cdid.ParseTopicID(t)
		if err != nil {
			return nil, errors.Wrap(err, "parsing topic")
		}
		c.Topic = &topic
	}

	return c, nil
}
