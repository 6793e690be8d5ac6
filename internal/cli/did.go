package cli

import (
	"context"
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	keys "github.com/tcfw/didanchor/pkg/cryptography"
	"github.com/tcfw/didanchor/pkg/did/w3cdid"
	"github.com/tcfw/didanchor/pkg/tx"

	internalDID "github.com/tcfw/didanchor/internal/did"
	"github.com/tcfw/didanchor/internal/utils/logging"
)

var (
	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a new DID document",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}

	parseCmd = &cobra.Command{
		Use:   "parse <did>",
		Short: "Parse a DID into its components",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}

	hashCmd = &cobra.Command{
		Use:   "hash <file|->",
		Short: "Print the credential hash of a DID document",
		Args:  cobra.ExactArgs(1),
		RunE:  runHash,
	}

	anchorCmd = &cobra.Command{
		Use:   "anchor <file|->",
		Short: "Build the topic message announcing a DID document",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnchor,
	}
)

func init() {
	generateCmd.Flags().String("network", "", "ledger network. blank defaults to the configured network")
	generateCmd.Flags().String("key", "", "hex signing key. blank generates a new key")
	generateCmd.Flags().String("topic", "", "anchoring topic id in shard.realm.num form")
	generateCmd.Flags().Bool("secp256k1", false, "generate a secp256k1 signing key instead of ed25519")
	generateCmd.Flags().Bool("private", false, "include private keys in the output")
	generateCmd.Flags().Bool("save", false, "save the private keys to the key store")

	anchorCmd.Flags().String("op", "create", "operation: create, update or delete")
}

type didComponents struct {
	DID        string `json:"did"`
	Method     string `json:"method"`
	Network    string `json:"network,omitempty"`
	Identifier string `json:"identifier"`
	TopicID    string `json:"topicId,omitempty"`
	Legacy     string `json:"legacy,omitempty"`
}

func signingKey(cmd *cobra.Command) (crypto.PrivateKey, error) {
	hex, _ := cmd.Flags().GetString("key")
	secp, _ := cmd.Flags().GetBool("secp256k1")

	switch {
	case hex != "" && secp:
		return keys.ParseSecp256k1PrivateKey(hex)
	case hex != "":
		return hex, nil
	case secp:
		return keys.NewEcdsaSecp256k1PrivateKey()
	default:
		_, sk, err := ed25519.GenerateKey(rand.Reader)
		return sk, err
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	network, _ := cmd.Flags().GetString("network")
	if network == "" {
		network = cfg.DID().Network
	}

	topic := cfg.DID().Topic
	if t, _ := cmd.Flags().GetString("topic"); t != "" {
		tid, err := w3cdid.ParseTopicID(t)
		if err != nil {
			return err
		}
		topic = &tid
	}

	key, err := signingKey(cmd)
	if err != nil {
		return errors.Wrap(err, "creating signing key")
	}

	doc, err := cfg.DID().Method.GenerateDocument(ctx, network, key, topic)
	if err != nil {
		logging.WithError(err).Error("generating document")
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		fs, err := internalDID.NewFileStore(cfg.Storage().Keys)
		if err != nil {
			return errors.Wrap(err, "opening key store")
		}

		if err := fs.Add(doc); err != nil {
			return errors.Wrap(err, "saving keys")
		}

		logging.WithField("did", doc.ID()).Info("saved private keys")
	}

	if private, _ := cmd.Flags().GetBool("private"); private {
		return printJSON(cmd.OutOrStdout(), doc.PrivateDocument())
	}

	return printJSON(cmd.OutOrStdout(), doc)
}

func runParse(cmd *cobra.Command, args []string) error {
	d, err := cfg.DID().Method.ParseDID(args[0])
	if err != nil {
		return err
	}

	c := didComponents{
		DID:        d.String(),
		Method:     d.Method(),
		Identifier: d.Identifier(),
	}

	if l, ok := d.(*w3cdid.LedgerDID); ok {
		c.Network = l.Network()
		if topic, ok := l.TopicID(); ok {
			c.TopicID = topic.String()
			c.Legacy = l.LegacyString()
		}
	}

	return printJSON(cmd.OutOrStdout(), c)
}

func readDocument(cmd *cobra.Command, f string) (*w3cdid.Document, error) {
	b, err := readInput(cmd, f)
	if err != nil {
		return nil, err
	}

	return cfg.DID().Method.ParseDocument(b)
}

func runHash(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(cmd, args[0])
	if err != nil {
		return errors.Wrap(err, "reading document")
	}

	h, err := doc.CredentialHash()
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), map[string]string{"did": doc.ID(), "hash": h})
}

func runAnchor(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(cmd, args[0])
	if err != nil {
		return errors.Wrap(err, "reading document")
	}

	op, _ := cmd.Flags().GetString("op")
	typ, err := tx.ParseOperation(op)
	if err != nil {
		return err
	}

	m, err := tx.NewMessage(typ, doc, time.Now())
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), m)
}

// isMessage reports whether b holds a topic message rather than a document
func isMessage(b []byte) bool {
	var probe struct {
		Operation string `json:"operation"`
	}

	return json.Unmarshal(b, &probe) == nil && probe.Operation != ""
}
