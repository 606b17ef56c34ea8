package doc

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	createCmd = &cobra.Command{
		Use:   "create [type] [file] [surface] [main]",
		Short: "Creates an item with a server-allocated id",
		Long:  `Creates an item in the given file. The surface and main arguments each hold a JSON object; their fields are merged (main wins) and the server allocates the id.`,
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := docStore.Create(args[0], args[1], args[2], args[3])
			if err != nil {
				return err
			}
			fmt.Println(string(item))
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [type] [file] [id|ALL]",
		Short: "Reads one item by id, or the whole document with ALL",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[2] == "ALL" {
				doc, err := docStore.GetAll(args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Println(string(doc))
				return nil
			}

			id, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("id must be a number or 'ALL': %w", err)
			}
			item, err := docStore.Get(args[0], args[1], id)
			if err != nil {
				return err
			}
			fmt.Println(string(item))
			return nil
		},
	}
	updateCmd = &cobra.Command{
		Use:   "update [type] [file] [id] [surface] [main]",
		Short: "Updates the item with the given id",
		Long:  `Updates an item. Fields from surface and main are merged over the stored item (main wins); fields not mentioned keep their value and the id cannot be changed.`,
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("id must be a number: %w", err)
			}
			item, err := docStore.Update(args[0], args[1], id, args[3], args[4])
			if err != nil {
				return err
			}
			fmt.Println(string(item))
			return nil
		},
	}
	deleteCmd = &cobra.Command{
		Use:   "delete [type] [file] [id|ALL]",
		Short: "Deletes one item by id, or all items with ALL",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[2] == "ALL" {
				if err := docStore.DeleteAll(args[0], args[1]); err != nil {
					return err
				}
				fmt.Println("all items deleted")
				return nil
			}

			id, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("id must be a number or 'ALL': %w", err)
			}
			if err := docStore.Delete(args[0], args[1], id); err != nil {
				return err
			}
			fmt.Println("item deleted")
			return nil
		},
	}
)
