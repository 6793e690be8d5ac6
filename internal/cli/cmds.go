package cli

func regCommands() {
	//DID
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(anchorCmd)

	//Store
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(topicCmd)
	rootCmd.AddCommand(deleteCmd)
}
