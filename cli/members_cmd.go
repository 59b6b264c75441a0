package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newMembersCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage registered members",
	}

	cmd.AddCommand(newMembersAddCmd(configPath))
	cmd.AddCommand(newMembersListCmd(configPath))
	cmd.AddCommand(newMembersSearchCmd(configPath))

	return cmd
}

func newMembersAddCmd(configPath *string) *cobra.Command {
	var (
		name       string
		email      string
		phone      string
		department string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new member",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			member, err := a.members.Register(cmd.Context(), name, email, phone, department)
			if err != nil {
				return err
			}

			cmd.Printf("Member '%s' registered successfully with ID %s.\n", member.Name, member.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Member name")
	cmd.Flags().StringVar(&email, "email", "", "Member email")
	cmd.Flags().StringVar(&phone, "phone", "", "Member phone number")
	cmd.Flags().StringVar(&department, "department", "", "Member department")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newMembersListCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Display all registered members",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			members, err := a.members.List(cmd.Context())
			if err != nil {
				return err
			}

			printMembers(os.Stdout, members)
			return nil
		},
	}

	return cmd
}

func newMembersSearchCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search members by name, email, or department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer a.closeDB()

			members, err := a.members.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printMembers(os.Stdout, members)
			return nil
		},
	}

	return cmd
}
