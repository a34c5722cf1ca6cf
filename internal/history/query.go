package history

// Query fetches the domain, registration and resolver events of a name.
const Query = `query getHistory($name: String!, $label: String!) {
  domains(where: { name: $name }) {
    events {
      id
      blockNumber
      transactionID
      __typename
      ...on Transfer {
        owner {
          id
        }
      }
      ...on NewOwner {
        owner {
          id
        }
      }
      ...on NewResolver {
        resolver {
          id
        }
      }
      ...on NewTTL {
        ttl
      }
    }
    owner {
      registrations(where: { labelName: $label }) {
        events {
          id
          blockNumber
          transactionID
          __typename
          ...on NameRegistered {
            registrant {
              id
            }
            expiryDate
          }
          ...on NameRenewed {
            expiryDate
          }
          ...on NameTransferred {
            newOwner {
              id
            }
          }
        }
      }
    }
    resolver {
      events {
        id
        blockNumber
        transactionID
        __typename
        ...on AddrChanged {
          addr {
            id
          }
        }
        ...on MulticoinAddrChanged {
          coinType
          multiaddr: addr
        }
        ...on NameChanged {
          name
        }
        ...on AbiChanged {
          contentType
        }
        ...on PubkeyChanged {
          x
          y
        }
        ...on TextChanged {
          key
        }
        ...on ContenthashChanged {
          hash
        }
        ...on InterfaceChanged {
          interfaceID
          implementer
        }
        ...on AuthorisationChanged {
          owner
          target
          isAuthorized
        }
      }
    }
  }
}`
