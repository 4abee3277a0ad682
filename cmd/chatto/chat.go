package main

import (
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/chattolabs/chatto/internal/chats"
	"github.com/chattolabs/chatto/internal/upload"
)

var uploadWatch bool

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.AddCommand(chatListCmd)
	chatCmd.AddCommand(chatRenameCmd)
	chatCmd.AddCommand(chatDeleteCmd)
	chatCmd.AddCommand(chatUploadCmd)

	chatUploadCmd.Flags().BoolVar(&uploadWatch, "watch", false, "treat the argument as a directory and upload exports as they appear")
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Manage uploaded chats",
}

var chatListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List uploaded chats grouped by upload day",
	RunE:  runChatList,
}

var chatRenameCmd = &cobra.Command{
	Use:   "rename <chat-id> <title>",
	Short: "Rename an uploaded chat",
	Args:  cobra.ExactArgs(2),
	RunE:  runChatRename,
}

var chatDeleteCmd = &cobra.Command{
	Use:   "rm <chat-id>",
	Short: "Delete an uploaded chat",
	Args:  cobra.ExactArgs(1),
	RunE:  runChatDelete,
}

var chatUploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a messenger export file",
	Long: `Upload a messenger export file (.txt or .csv).

Examples:
  # Upload one export
  chatto chat upload ./KakaoTalk_20250601.txt

  # Keep uploading files dropped into a directory
  chatto chat upload --watch ~/Downloads/exports`,
	Args: cobra.ExactArgs(1),
	RunE: runChatUpload,
}

func runChatList(cmd *cobra.Command, args []string) error {
	state, err := newAppState()
	if err != nil {
		return err
	}
	defer state.close()
	ctx, cancel := state.ctx()
	defer cancel()

	client, err := state.requireAuth(ctx)
	if err != nil {
		return err
	}
	items, err := client.ListChats(ctx, state.mode)
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(items)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHAT ID\tTITLE\tPEOPLE\tUPLOADED\tBUCKET")
	now := time.Now()
	for _, chat := range items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			chat.ID, chat.Title, chat.PeopleNum,
			chat.UploadedAt.Format("2006-01-02 15:04"),
			chats.BucketFor(chat.UploadedAt, now).Label())
	}
	return w.Flush()
}

func runChatRename(cmd *cobra.Command, args []string) error {
	state, err := newAppState()
	if err != nil {
		return err
	}
	defer state.close()
	ctx, cancel := state.ctx()
	defer cancel()

	client, err := state.requireAuth(ctx)
	if err != nil {
		return err
	}
	if err := client.RenameChat(ctx, state.mode, args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("renamed %s to %q\n", args[0], args[1])
	return nil
}

func runChatDelete(cmd *cobra.Command, args []string) error {
	state, err := newAppState()
	if err != nil {
		return err
	}
	defer state.close()
	ctx, cancel := state.ctx()
	defer cancel()

	client, err := state.requireAuth(ctx)
	if err != nil {
		return err
	}
	if err := client.DeleteChat(ctx, state.mode, args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func runChatUpload(cmd *cobra.Command, args []string) error {
	state, err := newAppState()
	if err != nil {
		return err
	}
	defer state.close()
	ctx, cancel := state.ctx()
	defer cancel()

	client, err := state.requireAuth(ctx)
	if err != nil {
		return err
	}
	uploader := upload.NewUploader(client, state.mode, chats.NewBoard(), state.logger)

	if uploadWatch {
		// Watch runs until interrupted; drop the per-request timeout.
		watchCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		fmt.Printf("watching %s for exports, ctrl-c to stop\n", args[0])
		return uploader.Watch(watchCtx, args[0], func(chatID, title string) {
			fmt.Printf("uploaded %s as %q\n", chatID, title)
		})
	}

	chat, err := uploader.Upload(ctx, args[0])
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(chat)
	}
	fmt.Printf("uploaded %s as %q (%d명)\n", chat.ID, chat.Title, chat.PeopleNum)
	return nil
}
