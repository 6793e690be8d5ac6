package cli

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tcfw/didanchor/pkg/did/resolver"
	"github.com/tcfw/didanchor/pkg/did/w3cdid"
	"github.com/tcfw/didanchor/pkg/tx"

	internalDID "github.com/tcfw/didanchor/internal/did"
	"github.com/tcfw/didanchor/internal/storage"
	"github.com/tcfw/didanchor/internal/utils/logging"
)

var (
	storeCmd = &cobra.Command{
		Use:   "store <file|->",
		Short: "Store a DID document or apply a topic message",
		Args:  cobra.ExactArgs(1),
		RunE:  runStore,
	}

	resolveCmd = &cobra.Command{
		Use:   "resolve <did>",
		Short: "Resolve a DID from the local document store",
		Args:  cobra.ExactArgs(1),
		RunE:  runResolve,
	}

	historyCmd = &cobra.Command{
		Use:   "history <did>",
		Short: "List the operations applied to a DID",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistory,
	}

	topicCmd = &cobra.Command{
		Use:   "topic <topicId>",
		Short: "List the DIDs anchored to a topic",
		Args:  cobra.ExactArgs(1),
		RunE:  runTopic,
	}

	deleteCmd = &cobra.Command{
		Use:   "delete <did>",
		Short: "Delete a DID document from the local document store",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
)

func init() {
	resolveCmd.Flags().Bool("private", false, "attach private keys from the key store")
	resolveCmd.Flags().String("method", "", "print only the verification method with this fragment")
}

func withStore(fn func(ctx context.Context, s *storage.PebbleStore) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := storage.NewPebbleStore(cfg.Storage().Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logging.WithError(err).Error("closing document store")
		}
	}()

	return fn(ctx, s)
}

func runStore(cmd *cobra.Command, args []string) error {
	b, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	return withStore(func(ctx context.Context, s *storage.PebbleStore) error {
		if isMessage(b) {
			m, err := tx.ParseMessage(b)
			if err != nil {
				return err
			}

			t, err := m.Tx()
			if err != nil {
				return err
			}

			id, err := s.Apply(ctx, t)
			if err != nil {
				logging.WithError(err).WithField("did", m.DID).Error("applying message")
				return err
			}

			return printJSON(cmd.OutOrStdout(), map[string]string{"did": m.DID, "id": id.String()})
		}

		doc, err := cfg.DID().Method.ParseDocument(b)
		if err != nil {
			return errors.Wrap(err, "parsing document")
		}

		id, err := s.Put(ctx, doc)
		if err != nil {
			logging.WithError(err).WithField("did", doc.ID()).Error("storing document")
			return err
		}

		return printJSON(cmd.OutOrStdout(), map[string]string{"did": doc.ID(), "id": id.String()})
	})
}

func runResolve(cmd *cobra.Command, args []string) error {
	private, _ := cmd.Flags().GetBool("private")
	method, _ := cmd.Flags().GetString("method")

	return withStore(func(ctx context.Context, s *storage.PebbleStore) error {
		r := resolver.NewResolver(s, resolver.WithMethod(cfg.DID().Method))

		if method != "" {
			vm, err := r.ResolveMethod(ctx, w3cdid.URL(args[0]+method))
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), vm.ToObject(false))
		}

		doc, err := r.Resolve(ctx, args[0])
		if err != nil {
			return err
		}

		if !private {
			return printJSON(cmd.OutOrStdout(), doc)
		}

		fs, err := internalDID.NewFileStore(cfg.Storage().Keys)
		if err != nil {
			return errors.Wrap(err, "opening key store")
		}

		if err := fs.Apply(doc); err != nil {
			return errors.Wrap(err, "applying private keys")
		}

		return printJSON(cmd.OutOrStdout(), doc.PrivateDocument())
	})
}

func runHistory(cmd *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, s *storage.PebbleStore) error {
		txs, err := s.History(ctx, args[0])
		if err != nil {
			return err
		}

		msgs := make([]*tx.Message, 0, len(txs))
		for _, t := range txs {
			m, err := t.Message()
			if err != nil {
				return err
			}
			msgs = append(msgs, m)
		}

		return printJSON(cmd.OutOrStdout(), msgs)
	})
}

func runTopic(cmd *cobra.Command, args []string) error {
	topic, err := w3cdid.ParseTopicID(args[0])
	if err != nil {
		return err
	}

	return withStore(func(ctx context.Context, s *storage.PebbleStore) error {
		dids, err := s.ByTopic(ctx, topic)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), dids)
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, s *storage.PebbleStore) error {
		return s.Delete(ctx, args[0])
	})
}
