// Package clients implements the client registry subcommands
package clients

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/funil/internal/cli"
	"github.com/thenoetrevino/funil/internal/client"
)

// Cmd returns the client command with all its subcommands
func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "client",
		Short:             "Manage the client registry",
		PersistentPreRunE: cli.EnsureCLI,
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().Bool("quiet", false, "Minimal output (ID only)")

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(EditCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// ListCmd returns the client list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered clients",
		Long: `List registered clients by name.

Examples:
  funil client list
  funil client list --search padaria
  funil client list --search 12345678 --json
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
	cmd.Flags().String("search", "", "Only clients whose name, email, phone or CPF/CNPJ contains this")
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	formatter, instance, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer instance.Close()

	query, _ := cmd.Flags().GetString("search")
	list, err := instance.Client.ListClients(cmd.Context(), query)
	if err != nil {
		return formatter.Fail(err)
	}
	return formatter.Success(list)
}

// ShowCmd returns the client show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one client",
		Args:  cobra.NoArgs,
		RunE:  runShow,
	}
	requireID(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, _ []string) error {
	formatter, instance, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer instance.Close()

	id, _ := cmd.Flags().GetInt64("id")
	c, err := instance.Client.GetClient(cmd.Context(), id)
	if err != nil {
		return formatter.Fail(err)
	}
	return formatter.Success(c)
}

// CreateCmd returns the client new subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Register a client",
		Long: `Register a client. CPF/CNPJ may be typed with or without punctuation.

Examples:
  funil client new --name="Padaria Central" --document=12.345.678/0001-99
  CLIENT_ID=$(funil client new --name="Ana Souza" --email=ana@mail.com --quiet)
  funil card new --title="Seguro Auto" --client-id=$CLIENT_ID
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Client name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	addFieldFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, _ []string) error {
	formatter, instance, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer instance.Close()

	flags := cmd.Flags()
	name, _ := flags.GetString("name")
	email, _ := flags.GetString("email")
	phone, _ := flags.GetString("phone")
	document, _ := flags.GetString("document")
	address, _ := flags.GetString("address")
	insurance, _ := flags.GetString("insurance")
	notes, _ := flags.GetString("notes")

	c, err := instance.Client.CreateClient(cmd.Context(), client.NewClientRequest{
		Name:          name,
		Email:         email,
		Phone:         phone,
		Document:      document,
		Address:       address,
		InsuranceType: insurance,
		Notes:         notes,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(c)
	}
	if err := formatter.Message("✓ Registered client #%d", c.ID); err != nil {
		return err
	}
	return formatter.Success(c)
}

// EditCmd returns the client edit subcommand
func EditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change fields of a client",
		Long: `Change fields of a client. Only the flags given are changed.

Examples:
  funil client edit --id=3 --phone="(11) 3333-4444"
  funil client edit --id=3 --status=inativo
`,
		Args: cobra.NoArgs,
		RunE: runEdit,
	}
	requireID(cmd)
	cmd.Flags().String("name", "", "Client name")
	cmd.Flags().String("status", "", "Status: ativo or inativo")
	addFieldFlags(cmd)
	return cmd
}

func runEdit(cmd *cobra.Command, _ []string) error {
	formatter, instance, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer instance.Close()

	flags := cmd.Flags()
	changed := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	id, _ := flags.GetInt64("id")
	c, err := instance.Client.EditClient(cmd.Context(), id, client.EditClientRequest{
		Name:          changed("name"),
		Email:         changed("email"),
		Phone:         changed("phone"),
		Document:      changed("document"),
		Address:       changed("address"),
		InsuranceType: changed("insurance"),
		Notes:         changed("notes"),
		Status:        changed("status"),
	})
	if err != nil {
		return formatter.Fail(err)
	}
	return formatter.Success(c)
}

// DeleteCmd returns the client delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a client from the registry",
		Long:  "Remove a client. Its cards stay on the board and keep the client's name.",
		Args:  cobra.NoArgs,
		RunE:  runDelete,
	}
	requireID(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, _ []string) error {
	formatter, instance, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer instance.Close()

	id, _ := cmd.Flags().GetInt64("id")
	if err := instance.Client.DeleteClient(cmd.Context(), id); err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON {
		return formatter.Success(map[string]int64{"id": id})
	}
	return formatter.Message("✓ Deleted client #%d", id)
}

func requireID(cmd *cobra.Command) {
	cmd.Flags().Int64("id", 0, "Client ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
}

func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("document", "", "CPF or CNPJ")
	cmd.Flags().String("address", "", "Address")
	cmd.Flags().String("insurance", "", "Insurance type of interest")
	cmd.Flags().String("notes", "", "Free notes")
}
